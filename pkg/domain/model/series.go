package model

// Series is an ordered sequence of commits, oldest first. It is built
// once per check run and never mutated after the last Append.
type Series struct {
	commits []*Commit
}

// NewSeries parses each record into a Commit and collects them in order
func NewSeries(records []CommitRecord) *Series {
	s := &Series{}
	for _, rec := range records {
		s.Append(NewCommit(rec))
	}
	return s
}

// Append adds a commit to the end of the series
func (s *Series) Append(c *Commit) {
	s.commits = append(s.commits, c)
}

// Commits returns the commits in chronological order
func (s *Series) Commits() []*Commit {
	return s.commits
}

// Len returns the number of commits in the series
func (s *Series) Len() int {
	return len(s.commits)
}

// SharedBugRefs returns the bug reference lines present in every commit
// of the series, computed by progressive intersection starting from the
// first commit's set. The result keeps the first commit's ordering. An
// empty series yields nil.
func (s *Series) SharedBugRefs() []string {
	if len(s.commits) == 0 {
		return nil
	}

	shared := s.commits[0].BugRefs
	for _, c := range s.commits[1:] {
		refs := map[string]bool{}
		for _, ref := range c.BugRefs {
			refs[ref] = true
		}

		var next []string
		for _, ref := range shared {
			if refs[ref] {
				next = append(next, ref)
			}
		}
		shared = next
	}

	return shared
}
