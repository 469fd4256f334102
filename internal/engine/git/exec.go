package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/irahardianto/buildlint/internal/platform/logger"
)

// ExecService implements Service by running git commands via os/exec.
type ExecService struct{}

// NewExecService creates a new ExecService.
func NewExecService() *ExecService {
	return &ExecService{}
}

// ChangedFiles returns the files under dir that differ from ref.
func (s *ExecService) ChangedFiles(ctx context.Context, dir, ref string) ([]string, error) {
	logger.FromContext(ctx).Debug("getting changed files", "dir", dir, "ref", ref)

	if ref == "" || strings.HasPrefix(ref, "-") {
		return nil, fmt.Errorf("invalid git ref %q", ref)
	}

	tracked, err := s.runGit(ctx, dir, "diff", "--name-only", "--relative", ref, "--")
	if err != nil {
		return nil, fmt.Errorf("getting changed files: %w", err)
	}
	untracked, err := s.runGit(ctx, dir, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("getting untracked files: %w", err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, line := range strings.Split(tracked+"\n"+untracked, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		files = append(files, line)
	}
	sort.Strings(files)
	return files, nil
}

// runGit executes a git command in dir and returns its stdout.
func (s *ExecService) runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 -- args are fixed; ref is validated not to be a flag
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
