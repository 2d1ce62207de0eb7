package model

// PullRequest represents the slice of a pull request event needed to
// run a series check: repository coordinates plus the base/head range.
type PullRequest struct {
	Owner   string // Repository owner
	Repo    string // Repository name
	Number  int    // PR number
	BaseSHA string // Base commit SHA (range start, exclusive)
	HeadSHA string // Head commit SHA (range end, inclusive)
}
