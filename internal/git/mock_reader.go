package git

import "context"

// MockHistorySource is a test double for HistoryReader.
// It allows tests to provide predefined tag and commit data without needing a
// real Git repository.
type MockHistorySource struct {
	TagList    []TagInfo
	CommitList []CommitInfo
	Error      error
}

// NewMockHistorySource creates a new MockHistorySource with the given data.
func NewMockHistorySource(tags []TagInfo, commits []CommitInfo) *MockHistorySource {
	return &MockHistorySource{TagList: tags, CommitList: commits}
}

// Tags returns the predefined tags or error.
func (m *MockHistorySource) Tags(_ context.Context) ([]TagInfo, error) {
	return m.TagList, m.Error
}

// Commits returns the predefined commits or error.
func (m *MockHistorySource) Commits(_ context.Context) ([]CommitInfo, error) {
	return m.CommitList, m.Error
}

// Compile-time interface conformance check.
var _ HistorySource = (*MockHistorySource)(nil)
