// Package git abstracts git operations for testability.
package git

import (
	"context"
)

// Service abstracts git operations for testability.
type Service interface {
	// ChangedFiles returns the files under dir that differ from ref, either
	// committed since, staged, unstaged or untracked. Paths are relative to
	// dir, use '/' separators, and are sorted.
	ChangedFiles(ctx context.Context, dir, ref string) ([]string, error)
}
