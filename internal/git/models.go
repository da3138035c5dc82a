package git

import (
	"strings"
	"time"
)

// TagInfo represents a repository tag resolved to its tagged commit.
type TagInfo struct {
	Name     string
	CommitID string
	When     time.Time
}

// CommitInfo represents minimal information about a Git commit.
type CommitInfo struct {
	ID      string
	When    time.Time
	Author  AuthorInfo
	Message string
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// ContributorKey returns a normalized identifier for grouping contributors.
func (a AuthorInfo) ContributorKey() string {
	return strings.ToLower(a.Email)
}

// Subject returns the first line of the commit message.
func (c CommitInfo) Subject() string {
	if idx := strings.IndexByte(c.Message, '\n'); idx != -1 {
		return c.Message[:idx]
	}
	return c.Message
}

// ReadOptions configures the history reader.
type ReadOptions struct {
	RepoPath     string
	Branch       string
	IncludePaths []string // Glob patterns; empty means all paths
	ExcludePaths []string // Glob patterns; evaluated before includes
}
