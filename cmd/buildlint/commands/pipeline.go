package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/irahardianto/buildlint/internal/engine/config"
	"github.com/irahardianto/buildlint/internal/engine/git"
	"github.com/irahardianto/buildlint/internal/engine/parser"
	"github.com/irahardianto/buildlint/internal/engine/runner"
	"github.com/irahardianto/buildlint/internal/platform/logger"
)

// ErrLogsFailed is returned when one or more blocking logs fail.
var ErrLogsFailed = errors.New("logs failed")

// newPipeline wires real infrastructure for the check and parse commands.
// This is a composition root: it is the only place that touches the
// process working directory and standard streams.
func newPipeline(stdin io.Reader, stdout, stderr io.Writer) *Pipeline {
	engine := runner.NewEngine(&osLogReader{stdin: stdin}, flagConcurrency)
	engine.Progress = runner.NewProgress(stderr, flagFormat != formatCLI)

	return &Pipeline{
		LoadConfig: config.Load,
		Registry:   parser.DefaultRegistry(),
		Runner:     engine,
		Git:        git.NewExecService(),
		Stdout:     stdout,
		Stderr:     stderr,
	}
}

func pipelineOpts(skip []string) PipelineOpts {
	return PipelineOpts{
		Format:       flagFormat,
		Verbose:      flagVerbose,
		NoColor:      flagNoColor,
		Skip:         skip,
		ChangedSince: flagChangedSince,
	}
}

// runCheck parses every log configured in configPath.
func runCheck(ctx context.Context, configPath string, skip []string, stdin io.Reader, stdout, stderr io.Writer) error {
	log := logger.FromContext(ctx)

	projectDir, err := config.ProjectDir(configPath)
	if err != nil {
		return err
	}

	p := newPipeline(stdin, stdout, stderr)
	p.ConfigPath = configPath
	p.ProjectDir = projectDir

	err = p.Execute(ctx, pipelineOpts(skip))
	if err != nil && !errors.Is(err, ErrLogsFailed) {
		log.Error("check failed", "error", err)
	}
	return err
}

// runParse parses files given on the command line.
func runParse(ctx context.Context, files []string, popts ParseOpts, stdin io.Reader, stdout, stderr io.Writer) error {
	log := logger.FromContext(ctx)

	baseDir, err := resolveBaseDir(popts.BaseDir)
	if err != nil {
		return err
	}
	popts.BaseDir = baseDir

	p := newPipeline(stdin, stdout, stderr)
	err = p.ParseFiles(ctx, files, popts, pipelineOpts(nil))
	if err != nil && !errors.Is(err, ErrLogsFailed) {
		log.Error("parse failed", "error", err)
	}
	return err
}

// resolveBaseDir makes dir absolute against the working directory; empty means the working directory.
func resolveBaseDir(dir string) (string, error) {
	if dir != "" && parser.IsAbsPath(dir) {
		return dir, nil
	}
	wd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	if dir == "" {
		return wd, nil
	}
	return parser.CanonicalPath(wd + "/" + dir), nil
}

// getwd is a variable for testability (defaults to os.Getwd).
var getwd = os.Getwd

// osLogReader reads logs from disk, or from stdin for "-".
// Stdin is read once and shared by every job that names it.
type osLogReader struct {
	stdin io.Reader

	once      sync.Once
	stdinData []byte
	stdinErr  error
}

func (r *osLogReader) ReadFile(name string) ([]byte, error) {
	if name != "-" {
		return os.ReadFile(name) // #nosec G304 -- path comes from the user's config or arguments
	}
	r.once.Do(func() {
		if r.stdin == nil {
			r.stdinErr = errors.New("stdin is not available")
			return
		}
		r.stdinData, r.stdinErr = io.ReadAll(r.stdin)
	})
	return r.stdinData, r.stdinErr
}
