package git

import (
	"context"
)

// MockService is a test double for git.Service.
type MockService struct {
	// Files maps a directory to the changed files reported for it.
	Files map[string][]string
	Err   error
	Calls []string
}

// ChangedFiles returns the configured files for dir.
func (m *MockService) ChangedFiles(_ context.Context, dir, _ string) ([]string, error) {
	m.Calls = append(m.Calls, dir)
	return m.Files[dir], m.Err
}
