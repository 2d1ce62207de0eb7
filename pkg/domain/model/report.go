package model

// Check names used in structured logs and reports
const (
	CheckBugRef     = "bug-reference"
	CheckSignOff    = "sign-off"
	CheckProvenance = "provenance"
)

// CheckResult is the outcome of a single policy check
type CheckResult struct {
	Name    string // Which check produced this result
	Passed  bool
	Message string // Human-readable detail, includes the tag text where relevant
}

// CommitReport collects every per-commit check result for one commit
type CommitReport struct {
	SHA     string
	Title   string
	Results []CheckResult
}

// ShortSHA returns the 12-character display prefix of the commit SHA
func (r *CommitReport) ShortSHA() string {
	if len(r.SHA) < 12 {
		return r.SHA
	}
	return r.SHA[:12]
}

// Passed reports whether every check on this commit passed
func (r *CommitReport) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// SeriesReport is the full outcome of one check run: per-commit reports
// in chronological order plus series-level consistency results. Series
// results are empty for a single-commit series.
type SeriesReport struct {
	Commits []CommitReport
	Series  []CheckResult
}

// Passed reports whether every per-commit and series-level check passed
func (r *SeriesReport) Passed() bool {
	for i := range r.Commits {
		if !r.Commits[i].Passed() {
			return false
		}
	}
	for _, res := range r.Series {
		if !res.Passed {
			return false
		}
	}
	return true
}
