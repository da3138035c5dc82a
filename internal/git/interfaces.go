package git

import "context"

// HistorySource defines the interface for enumerating repository history.
// This abstraction allows for easier testing and potential alternative implementations.
type HistorySource interface {
	// Tags returns all repository tags resolved to their tagged commits.
	Tags(ctx context.Context) ([]TagInfo, error)

	// Commits returns the commit history, most recent first.
	Commits(ctx context.Context) ([]CommitInfo, error)
}

// Compile-time interface conformance check.
var _ HistorySource = (*HistoryReader)(nil)
