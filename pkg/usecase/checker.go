package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/warden/pkg/domain/interfaces"
	"github.com/m-mizutani/warden/pkg/domain/model"
)

type checkUseCase struct {
	source  interfaces.CommitSource
	tracker interfaces.BugTracker
	policy  model.Policy
}

// Option is a functional option for check use case configuration
type Option func(*checkUseCase)

// WithPolicy overrides the default checking policy
func WithPolicy(policy model.Policy) Option {
	return func(uc *checkUseCase) {
		uc.policy = policy
	}
}

// NewCheck creates a new instance of CheckUseCase
func NewCheck(source interfaces.CommitSource, tracker interfaces.BugTracker, opts ...Option) interfaces.CheckUseCase {
	uc := &checkUseCase{
		source:  source,
		tracker: tracker,
		policy:  model.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CheckRange runs every per-commit and series-level check over start..end
func (uc *checkUseCase) CheckRange(ctx context.Context, startRev, endRev string) (*model.SeriesReport, error) {
	logger := ctxlog.From(ctx)

	records, err := uc.source.ListRange(ctx, startRev, endRev)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve revision range",
			goerr.V("start", startRev),
			goerr.V("end", endRev),
		)
	}

	series := model.NewSeries(records)
	logger.Info("Checking patch series",
		"start", startRev,
		"end", endRev,
		"commits", series.Len(),
	)

	run := &checkRun{
		policy:  uc.policy,
		tracker: uc.tracker,
		lookups: map[string]bool{},
	}

	report := &model.SeriesReport{}
	for _, c := range series.Commits() {
		report.Commits = append(report.Commits, run.checkCommit(ctx, c))
	}

	// Cross-commit consistency only makes sense for an actual series.
	if series.Len() > 1 {
		report.Series = run.checkSeries(series)
	}

	return report, nil
}

// checkRun holds per-run state: the policy in effect and a cache so each
// unique bug URL is looked up at most once across the whole series.
type checkRun struct {
	policy  model.Policy
	tracker interfaces.BugTracker
	lookups map[string]bool
}

// checkCommit runs the three per-commit checks. Every check executes and
// reports regardless of earlier failures; the report lists all problems
// found in one pass.
func (r *checkRun) checkCommit(ctx context.Context, c *model.Commit) model.CommitReport {
	report := model.CommitReport{SHA: c.SHA, Title: c.Title}

	report.Results = append(report.Results, r.checkBugRefs(ctx, c)...)
	report.Results = append(report.Results, r.checkSignOff(c))
	report.Results = append(report.Results, r.checkProvenance(c)...)

	return report
}

func (r *checkRun) checkBugRefs(ctx context.Context, c *model.Commit) []model.CheckResult {
	if len(c.BugRefs) == 0 {
		if c.Classification == model.ClassDistro {
			return []model.CheckResult{{
				Name:    model.CheckBugRef,
				Passed:  true,
				Message: "bug reference not required (distro commit)",
			}}
		}
		return []model.CheckResult{{
			Name:    model.CheckBugRef,
			Passed:  false,
			Message: "no bug reference found",
		}}
	}

	var results []model.CheckResult
	for _, ref := range c.BugRefs {
		if r.validBugRef(ctx, ref) {
			results = append(results, model.CheckResult{
				Name:    model.CheckBugRef,
				Passed:  true,
				Message: "valid bug reference: " + ref,
			})
		} else {
			results = append(results, model.CheckResult{
				Name:    model.CheckBugRef,
				Passed:  false,
				Message: "invalid bug reference: " + ref,
			})
		}
	}
	return results
}

func (r *checkRun) checkSignOff(c *model.Commit) model.CheckResult {
	switch {
	case c.SignOff == "":
		return model.CheckResult{
			Name:    model.CheckSignOff,
			Passed:  false,
			Message: "missing sign-off",
		}
	case validSignOff(c.SignOff):
		return model.CheckResult{
			Name:    model.CheckSignOff,
			Passed:  true,
			Message: "valid sign-off: " + c.SignOff,
		}
	default:
		return model.CheckResult{
			Name:    model.CheckSignOff,
			Passed:  false,
			Message: "invalid sign-off: " + c.SignOff,
		}
	}
}

func (r *checkRun) checkProvenance(c *model.Commit) []model.CheckResult {
	switch {
	case c.CherryPick != "":
		if validCherryPick(c.CherryPick) {
			return []model.CheckResult{{
				Name:    model.CheckProvenance,
				Passed:  true,
				Message: "valid cherry-pick tag: " + c.CherryPick,
			}}
		}
		return []model.CheckResult{{
			Name:    model.CheckProvenance,
			Passed:  false,
			Message: "invalid cherry-pick tag: " + c.CherryPick,
		}}

	case c.Backport != "":
		// A backport needs both a valid trailer and a valid adaptation
		// note on the preceding line. Both are checked and reported.
		results := []model.CheckResult{}
		if validBackport(c.Backport) {
			results = append(results, model.CheckResult{
				Name:    model.CheckProvenance,
				Passed:  true,
				Message: "valid backport tag: " + c.Backport,
			})
		} else {
			results = append(results, model.CheckResult{
				Name:    model.CheckProvenance,
				Passed:  false,
				Message: "invalid backport tag: " + c.Backport,
			})
		}
		if validBackportNote(c.BackportNote) {
			results = append(results, model.CheckResult{
				Name:    model.CheckProvenance,
				Passed:  true,
				Message: "valid backport note: " + c.BackportNote,
			})
		} else {
			results = append(results, model.CheckResult{
				Name:    model.CheckProvenance,
				Passed:  false,
				Message: "invalid or missing backport note: " + c.BackportNote,
			})
		}
		return results

	case c.Classification == model.ClassDistro:
		return []model.CheckResult{{
			Name:    model.CheckProvenance,
			Passed:  true,
			Message: "provenance tag not required (distro commit)",
		}}

	default:
		return []model.CheckResult{{
			Name:    model.CheckProvenance,
			Passed:  false,
			Message: "missing provenance tag",
		}}
	}
}

// validBugRef checks the line format and, when it matches, consults the
// bug tracker. Lookup errors and timeouts count as invalid; there is no
// retry. Results are cached per URL for the duration of the run.
func (r *checkRun) validBugRef(ctx context.Context, ref string) bool {
	url, ok := bugRefURL(ref, r.policy.TrackerPrefix)
	if !ok {
		return false
	}

	if cached, ok := r.lookups[url]; ok {
		return cached
	}

	exists, err := r.tracker.Exists(ctx, url)
	if err != nil {
		ctxlog.From(ctx).Warn("Bug tracker lookup failed",
			"url", url,
			"error", err,
		)
		exists = false
	}

	r.lookups[url] = exists
	return exists
}

// checkSeries runs the cross-commit consistency checks. Both run
// unconditionally so the report covers every inconsistency.
func (r *checkRun) checkSeries(series *model.Series) []model.CheckResult {
	var results []model.CheckResult

	if shared := series.SharedBugRefs(); len(shared) > 0 {
		results = append(results, model.CheckResult{
			Name:    model.CheckBugRef,
			Passed:  true,
			Message: "shared bug references: " + strings.Join(shared, ", "),
		})
	} else {
		results = append(results, model.CheckResult{
			Name:    model.CheckBugRef,
			Passed:  false,
			Message: "no bug reference is shared by every commit in the series",
		})
	}

	commits := series.Commits()
	first := commits[0]
	mismatch := ""
	for _, c := range commits[1:] {
		if c.SignOff != first.SignOff {
			mismatch = c.ShortSHA()
			break
		}
	}
	if mismatch == "" {
		// Empty-vs-empty counts as equal here; a series with no sign-off
		// at all is caught by the per-commit check instead.
		results = append(results, model.CheckResult{
			Name:    model.CheckSignOff,
			Passed:  true,
			Message: "consistent sign-off: " + first.SignOff,
		})
	} else {
		results = append(results, model.CheckResult{
			Name:    model.CheckSignOff,
			Passed:  false,
			Message: "sign-off of commit " + mismatch + " differs from the first commit",
		})
	}

	return results
}
