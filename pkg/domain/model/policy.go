package model

import "time"

// Policy holds the tunable parts of the checking rules. Defaults match
// the Ubuntu kernel patch conventions.
type Policy struct {
	TrackerPrefix string        // Canonical bug tracker URL prefix for BugLink tags
	LookupTimeout time.Duration // Bound on each bug tracker existence lookup
}

// DefaultPolicy returns the stock policy
func DefaultPolicy() Policy {
	return Policy{
		TrackerPrefix: "https://bugs.launchpad.net/bugs/",
		LookupTimeout: 5 * time.Second,
	}
}
