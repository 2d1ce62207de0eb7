package model

import "strings"

// CommitRecord is a raw commit as read from the repository collaborator
type CommitRecord struct {
	SHA     string // Full hex commit identifier
	Message string // Complete commit message, title included
}

// Commit holds one commit's policy-relevant fields, extracted from the
// raw message at construction. It is immutable after NewCommit.
type Commit struct {
	SHA            string
	Title          string
	Body           string
	BugRefs        []string // Full BugLink lines, deduplicated
	SignOff        string   // Trailing sign-off line, empty if absent
	CherryPick     string   // Cherry-pick trailer, empty if absent
	Backport       string   // Backport trailer, empty if absent
	BackportNote   string   // Line preceding the backport trailer
	Classification Classification
}

// NewCommit parses a raw commit record into a Commit
func NewCommit(rec CommitRecord) *Commit {
	title, body, _ := strings.Cut(rec.Message, "\n")

	c := &Commit{
		SHA:   rec.SHA,
		Title: strings.TrimSpace(title),
		Body:  body,
	}
	c.BugRefs = ExtractBugRefs(body)
	c.SignOff = ExtractSignOff(body)
	c.CherryPick, c.Backport, c.BackportNote = ExtractProvenance(body)
	c.Classification = Classify(c.Title)

	return c
}

// ShortSHA returns the 12-character display prefix of the commit SHA
func (c *Commit) ShortSHA() string {
	if len(c.SHA) < 12 {
		return c.SHA
	}
	return c.SHA[:12]
}
