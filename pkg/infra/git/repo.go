package git

import (
	"context"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/warden/pkg/domain/interfaces"
	"github.com/m-mizutani/warden/pkg/domain/model"
)

type commitSource struct {
	repo *gogit.Repository
}

// New opens the repository at path and returns it as a CommitSource.
// An unreadable repository is a fatal collaborator failure.
func New(path string) (interfaces.CommitSource, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open repository", goerr.V("path", path))
	}
	return &commitSource{repo: repo}, nil
}

// ListRange returns the commits in startRev..endRev, oldest first. The
// walk starts at endRev and follows first parents back to startRev,
// which must be an ancestor of endRev.
func (s *commitSource) ListRange(ctx context.Context, startRev, endRev string) ([]model.CommitRecord, error) {
	startHash, err := s.repo.ResolveRevision(plumbing.Revision(startRev))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve start revision", goerr.V("rev", startRev))
	}
	endHash, err := s.repo.ResolveRevision(plumbing.Revision(endRev))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve end revision", goerr.V("rev", endRev))
	}

	var records []model.CommitRecord
	hash := *endHash
	for hash != *startHash {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "range walk cancelled")
		}

		commit, err := s.repo.CommitObject(hash)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read commit", goerr.V("hash", hash.String()))
		}

		records = append(records, model.CommitRecord{
			SHA:     commit.Hash.String(),
			Message: commit.Message,
		})

		hash, err = firstParent(commit, startHash)
		if err != nil {
			return nil, err
		}
	}

	// Walked newest to oldest, callers want oldest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, nil
}

func firstParent(commit *object.Commit, startHash *plumbing.Hash) (plumbing.Hash, error) {
	if commit.NumParents() == 0 {
		return plumbing.ZeroHash, goerr.New("start revision is not an ancestor of end revision",
			goerr.V("reached", commit.Hash.String()),
			goerr.V("start", startHash.String()),
		)
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return plumbing.ZeroHash, goerr.Wrap(err, "failed to read parent commit",
			goerr.V("hash", commit.Hash.String()),
		)
	}
	return parent.Hash, nil
}
