package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/warden/pkg/domain/model"
	"github.com/m-mizutani/warden/pkg/usecase"
)

const (
	pickSHA  = "0123456789abcdef0123456789abcdef01234567"
	validCP  = "(cherry picked from commit " + pickSHA + ")"
	validBP  = "(backported from commit " + pickSHA + ")"
	signOff  = "Signed-off-by: A B <a@b.com>"
	bugURL   = "https://bugs.launchpad.net/bugs/1234"
	bugLine  = "BugLink: " + bugURL
	bugURL2  = "https://bugs.launchpad.net/bugs/5678"
	bugLine2 = "BugLink: " + bugURL2
)

type mockSource struct {
	records []model.CommitRecord
	err     error
}

func (m *mockSource) ListRange(ctx context.Context, startRev, endRev string) ([]model.CommitRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

type mockTracker struct {
	exists map[string]bool
	errs   map[string]error
	calls  []string
}

func (m *mockTracker) Exists(ctx context.Context, url string) (bool, error) {
	m.calls = append(m.calls, url)
	if err, ok := m.errs[url]; ok {
		return false, err
	}
	return m.exists[url], nil
}

func newMockTracker(known ...string) *mockTracker {
	tracker := &mockTracker{exists: map[string]bool{}, errs: map[string]error{}}
	for _, url := range known {
		tracker.exists[url] = true
	}
	return tracker
}

func resultsByName(results []model.CheckResult, name string) []model.CheckResult {
	var out []model.CheckResult
	for _, res := range results {
		if res.Name == name {
			out = append(out, res)
		}
	}
	return out
}

func allPassed(results []model.CheckResult) bool {
	for _, res := range results {
		if !res.Passed {
			return false
		}
	}
	return len(results) > 0
}

func TestCheckRange_SauceWithoutBugRef(t *testing.T) {
	source := &mockSource{records: []model.CommitRecord{{
		SHA:     "aaaa111122223333aaaa111122223333aaaa1111",
		Message: "UBUNTU: SAUCE: fix thing\n\n" + validCP + "\n" + signOff + "\n",
	}}}

	uc := usecase.NewCheck(source, newMockTracker())
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	gt.Number(t, len(report.Commits)).Equal(1)
	results := report.Commits[0].Results

	// Sauce commits are not exempt from bug references.
	gt.True(t, !allPassed(resultsByName(results, model.CheckBugRef)))
	gt.True(t, allPassed(resultsByName(results, model.CheckSignOff)))
	gt.True(t, allPassed(resultsByName(results, model.CheckProvenance)))
	gt.Value(t, report.Passed()).Equal(false)
}

func TestCheckRange_DistroExemptions(t *testing.T) {
	source := &mockSource{records: []model.CommitRecord{{
		SHA:     "bbbb111122223333bbbb111122223333bbbb1111",
		Message: "UBUNTU: fix thing\n\nno tags at all\n",
	}}}

	uc := usecase.NewCheck(source, newMockTracker())
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	results := report.Commits[0].Results
	gt.True(t, allPassed(resultsByName(results, model.CheckBugRef)))
	gt.True(t, !allPassed(resultsByName(results, model.CheckSignOff)))
	gt.True(t, allPassed(resultsByName(results, model.CheckProvenance)))
	gt.Value(t, report.Passed()).Equal(false)
}

func TestCheckRange_BackportWithInvalidNote(t *testing.T) {
	source := &mockSource{records: []model.CommitRecord{{
		SHA: "cccc111122223333cccc111122223333cccc1111",
		Message: "fix thing\n\n" +
			bugLine + "\n\n" +
			"this is not a bracketed note\n" +
			validBP + "\n" +
			signOff + "\n",
	}}}

	uc := usecase.NewCheck(source, newMockTracker(bugURL))
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	results := report.Commits[0].Results
	provenance := resultsByName(results, model.CheckProvenance)

	// The backport tag itself is valid but the note is not: two results,
	// one pass and one fail, and the check as a whole fails.
	gt.Number(t, len(provenance)).Equal(2)
	gt.True(t, !allPassed(provenance))
	gt.Value(t, report.Passed()).Equal(false)
}

func TestCheckRange_SeriesSharedBugRef(t *testing.T) {
	first := model.CommitRecord{
		SHA: "dddd111122223333dddd111122223333dddd1111",
		Message: "fix one\n\n" +
			bugLine + "\n" + bugLine2 + "\n\n" +
			validCP + "\n" + signOff + "\n",
	}
	second := model.CommitRecord{
		SHA: "eeee111122223333eeee111122223333eeee1111",
		Message: "fix two\n\n" +
			bugLine + "\n" +
			"BugLink: https://bugs.launchpad.net/bugs/9999\n\n" +
			validCP + "\n" + signOff + "\n",
	}

	source := &mockSource{records: []model.CommitRecord{first, second}}
	tracker := newMockTracker(bugURL, bugURL2, "https://bugs.launchpad.net/bugs/9999")

	uc := usecase.NewCheck(source, tracker)
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	gt.Number(t, len(report.Series)).Equal(2)
	gt.True(t, allPassed(resultsByName(report.Series, model.CheckBugRef)))
	gt.True(t, allPassed(resultsByName(report.Series, model.CheckSignOff)))
	gt.Value(t, report.Passed()).Equal(true)
}

func TestCheckRange_SeriesSignOffMismatch(t *testing.T) {
	source := &mockSource{records: []model.CommitRecord{
		{
			SHA:     "ffff111122223333ffff111122223333ffff1111",
			Message: "fix one\n\n" + bugLine + "\n\n" + validCP + "\n" + signOff + "\n",
		},
		{
			SHA:     "0000111122223333000011112222333300001111",
			Message: "fix two\n\n" + bugLine + "\n\n" + validCP + "\nSigned-off-by: C D <c@d.com>\n",
		},
	}}

	uc := usecase.NewCheck(source, newMockTracker(bugURL))
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	gt.True(t, allPassed(resultsByName(report.Series, model.CheckBugRef)))
	gt.True(t, !allPassed(resultsByName(report.Series, model.CheckSignOff)))
	gt.Value(t, report.Passed()).Equal(false)
}

func TestCheckRange_SingleCommitSkipsSeriesChecks(t *testing.T) {
	source := &mockSource{records: []model.CommitRecord{{
		SHA:     "aaaa222233334444aaaa222233334444aaaa2222",
		Message: "fix thing\n\n" + bugLine + "\n\n" + validCP + "\n" + signOff + "\n",
	}}}

	uc := usecase.NewCheck(source, newMockTracker(bugURL))
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	gt.Number(t, len(report.Series)).Equal(0)
	gt.Value(t, report.Passed()).Equal(true)
}

func TestCheckRange_LookupCachedPerURL(t *testing.T) {
	record := func(sha string) model.CommitRecord {
		return model.CommitRecord{
			SHA:     sha,
			Message: "fix\n\n" + bugLine + "\n\n" + validCP + "\n" + signOff + "\n",
		}
	}
	source := &mockSource{records: []model.CommitRecord{
		record("aaaa333344445555aaaa333344445555aaaa3333"),
		record("bbbb333344445555bbbb333344445555bbbb3333"),
		record("cccc333344445555cccc333344445555cccc3333"),
	}}
	tracker := newMockTracker(bugURL)

	uc := usecase.NewCheck(source, tracker)
	_, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	// Three commits reference the same bug, one lookup.
	gt.Number(t, len(tracker.calls)).Equal(1)
}

func TestCheckRange_TrackerErrorIsInvalidNotFatal(t *testing.T) {
	source := &mockSource{records: []model.CommitRecord{{
		SHA:     "dddd333344445555dddd333344445555dddd3333",
		Message: "fix\n\n" + bugLine + "\n\n" + validCP + "\n" + signOff + "\n",
	}}}
	tracker := newMockTracker()
	tracker.errs[bugURL] = errors.New("connection timed out")

	uc := usecase.NewCheck(source, tracker)
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	gt.True(t, !allPassed(resultsByName(report.Commits[0].Results, model.CheckBugRef)))
	gt.Value(t, report.Passed()).Equal(false)
}

func TestCheckRange_SourceErrorIsFatal(t *testing.T) {
	source := &mockSource{err: errors.New("bad revision")}

	uc := usecase.NewCheck(source, newMockTracker())
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.Error(t, err)
	gt.Value(t, report).Nil()
}

func TestCheckRange_Idempotent(t *testing.T) {
	source := &mockSource{records: []model.CommitRecord{
		{
			SHA:     "eeee333344445555eeee333344445555eeee3333",
			Message: "fix one\n\n" + bugLine + "\n\n" + validCP + "\n" + signOff + "\n",
		},
		{
			SHA:     "ffff333344445555ffff333344445555ffff3333",
			Message: "UBUNTU: SAUCE: fix two\n\n" + signOff + "\n",
		},
	}}
	tracker := newMockTracker(bugURL)

	uc := usecase.NewCheck(source, tracker)
	first, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)
	second, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)

	gt.Equal(t, first, second)
}

func TestCheckRange_CustomPolicy(t *testing.T) {
	const altURL = "https://tracker.example.com/issues/42"
	source := &mockSource{records: []model.CommitRecord{{
		SHA:     "aaaa444455556666aaaa444455556666aaaa4444",
		Message: "fix\n\nBugLink: " + altURL + "\n\n" + validCP + "\n" + signOff + "\n",
	}}}
	tracker := newMockTracker(altURL)

	policy := model.DefaultPolicy()
	policy.TrackerPrefix = "https://tracker.example.com/issues/"

	uc := usecase.NewCheck(source, tracker, usecase.WithPolicy(policy))
	report, err := uc.CheckRange(context.Background(), "base", "head")
	gt.NoError(t, err)
	gt.Value(t, report.Passed()).Equal(true)
}
