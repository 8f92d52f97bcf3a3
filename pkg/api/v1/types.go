package v1

import "time"

// Commit is a single commit returned by a branch comparison.
type Commit struct {
	SHA     string
	Author  string
	Message string
}

// ShortSHA returns the abbreviated commit hash used in tables.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}

// PendingCommits is the outcome of comparing two branches of a repository.
// An empty commit list is a valid result, not an error.
type PendingCommits struct {
	Repository string
	Base       string
	Head       string
	Commits    []Commit
}

func (p *PendingCommits) HasCommits() bool {
	return len(p.Commits) > 0
}

// Release is a published release of a repository.
type Release struct {
	TagName     string
	Name        string
	Draft       bool
	Prerelease  bool
	PublishedAt time.Time
	URL         string
}

// ReleaseOptions describes a release to be created.
type ReleaseOptions struct {
	TagName      string
	TargetBranch string
	Name         string
	Body         string
	Draft        bool
	Prerelease   bool
}

// Workflow is a CI workflow defined in a repository.
type Workflow struct {
	ID    int64
	Name  string
	Path  string
	State string
}
