package interfaces

import "context"

// GitHubClient defines operations for interacting with GitHub API
type GitHubClient interface {
	// CreateComment posts a comment on a pull request
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}
