package interfaces

import (
	"context"

	"github.com/m-mizutani/warden/pkg/domain/model"
)

// CommitSource supplies the ordered commits of a revision range from a
// version control repository. The repository is read-only.
type CommitSource interface {
	// ListRange returns the commits in start..end (exclusive of start,
	// inclusive of end), oldest first. An unresolvable revision is an
	// error, not an empty range.
	ListRange(ctx context.Context, startRev, endRev string) ([]model.CommitRecord, error)
}
