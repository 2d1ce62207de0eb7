package interfaces

import "context"

// BugTracker answers whether a bug URL refers to an existing tracker
// entry. The production implementation performs a single HTTP GET with a
// bounded timeout; tests substitute a stub keyed by URL.
type BugTracker interface {
	Exists(ctx context.Context, url string) (bool, error)
}
