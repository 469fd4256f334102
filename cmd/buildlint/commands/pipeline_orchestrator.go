package commands

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/irahardianto/buildlint/internal/engine/config"
	"github.com/irahardianto/buildlint/internal/engine/filter"
	"github.com/irahardianto/buildlint/internal/engine/formatter"
	"github.com/irahardianto/buildlint/internal/engine/git"
	"github.com/irahardianto/buildlint/internal/engine/parser"
	"github.com/irahardianto/buildlint/internal/engine/runner"
	"github.com/irahardianto/buildlint/internal/platform/logger"
)

// PipelineOpts holds per-invocation output options.
type PipelineOpts struct {
	Format  string
	Verbose bool
	NoColor bool
	// Skip lists configured log names to leave out of a check run.
	Skip []string
	// ChangedSince restricts items to files changed since this git ref.
	ChangedSince string
}

// ParseOpts describes an ad hoc parse of log files given on the command line.
type ParseOpts struct {
	Type        string
	BaseDir     string
	OnMismatch  string
	MinSeverity string
	Only        []string
	Except      []string
}

// Pipeline orchestrates config loading, parsing and reporting with injected
// dependencies, so the orchestration can be tested without real files.
type Pipeline struct {
	// LoadConfig loads the project-level logs.yaml.
	LoadConfig func(ctx context.Context, path string) (*config.BuildlintConfig, error)

	// Registry builds parsers for each log type.
	Registry *parser.Registry

	// Runner parses logs in parallel.
	Runner LogRunner

	// Git lists changed files for --changed-since.
	Git git.Service

	// ConfigPath is the path to the logs.yaml file.
	ConfigPath string

	// ProjectDir is the directory relative config paths are resolved against.
	ProjectDir string

	// Stdout is the output writer for formatted results.
	Stdout io.Writer

	// Stderr is the output writer for status messages.
	Stderr io.Writer
}

// Execute runs every configured log through its parser and prints the report.
// Returns ErrLogsFailed if a blocking log failed.
func (p *Pipeline) Execute(ctx context.Context, opts PipelineOpts) error {
	log := logger.FromContext(ctx)
	log.Info("buildlint check started", "config", p.ConfigPath)

	cfg, err := p.LoadConfig(ctx, p.ConfigPath)
	if err != nil {
		return err
	}

	entries := filterSkippedLogs(cfg.Logs, opts.Skip)
	if len(entries) == 0 {
		fmt.Fprintln(p.Stderr, "✅ No logs to parse")
		return nil
	}

	changed := newChangedFiles(p.Git, opts.ChangedSince)
	jobs := make([]runner.Job, 0, len(entries))
	for _, entry := range entries {
		job, err := BuildJob(entry, p.Registry, p.ProjectDir)
		if err != nil {
			return err
		}
		if job.Filter.Changed, err = changed.under(ctx, entry.ResolveBaseDir(p.ProjectDir)); err != nil {
			return err
		}
		jobs = append(jobs, job)
	}

	return p.report(ctx, jobs, opts)
}

// ParseFiles parses the given files (or "-" for stdin) as one log type and
// prints the report. Returns ErrLogsFailed if any file failed.
func (p *Pipeline) ParseFiles(ctx context.Context, files []string, popts ParseOpts, opts PipelineOpts) error {
	logger.FromContext(ctx).Info("buildlint parse started", "files", len(files), "type", popts.Type)

	policy, err := parser.ParseMismatchPolicy(popts.OnMismatch)
	if err != nil {
		return err
	}
	rules, err := filterRules(popts.Only, popts.Except, popts.MinSeverity, false)
	if err != nil {
		return err
	}

	if rules.Changed, err = newChangedFiles(p.Git, opts.ChangedSince).under(ctx, popts.BaseDir); err != nil {
		return err
	}

	jobs := make([]runner.Job, 0, len(files))
	for _, f := range files {
		prs, err := p.Registry.New(parser.ProjectType(popts.Type), parser.Options{
			BaseDir:    popts.BaseDir,
			OnMismatch: policy,
		})
		if err != nil {
			return err
		}

		name := f
		if f == "-" {
			name = "stdin"
		}
		jobs = append(jobs, runner.Job{
			Name:     name,
			Path:     f,
			Type:     parser.ProjectType(popts.Type),
			Blocking: true,
			Parser:   prs,
			Filter:   rules,
		})
	}

	return p.report(ctx, jobs, opts)
}

// report runs jobs, prints the formatted report, and maps failure to ErrLogsFailed.
func (p *Pipeline) report(ctx context.Context, jobs []runner.Job, opts PipelineOpts) error {
	result, err := p.Runner.RunAll(ctx, jobs)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = formatCLI
	}
	fmt.Fprint(p.Stdout, formatter.New(format, !opts.NoColor, opts.Verbose).Format(*result))

	if !result.Passed {
		return ErrLogsFailed
	}
	return nil
}

// BuildJob turns a configured log entry into a runnable job.
func BuildJob(entry config.LogEntry, reg *parser.Registry, projectDir string) (runner.Job, error) {
	t := parser.ProjectType(entry.Type)
	prs, err := reg.New(t, parser.Options{
		BaseDir:    entry.ResolveBaseDir(projectDir),
		OnMismatch: entry.MismatchPolicy(),
	})
	if err != nil {
		return runner.Job{}, fmt.Errorf("log %q: %w", entry.Name, err)
	}

	rules, err := filterRules(entry.Only, entry.Except, entry.MinSeverity, entry.DropInvalid)
	if err != nil {
		return runner.Job{}, fmt.Errorf("log %q: %w", entry.Name, err)
	}

	return runner.Job{
		Name:     entry.Name,
		Path:     entry.ResolvePath(projectDir),
		Type:     t,
		Blocking: entry.IsBlocking(),
		Parser:   prs,
		Filter:   rules,
	}, nil
}

func filterRules(only, except []string, minSeverity string, dropInvalid bool) (filter.Rules, error) {
	rules := filter.Rules{Only: only, Except: except, DropInvalid: dropInvalid}
	if minSeverity != "" {
		sev, ok := parser.ParseSeverity(minSeverity)
		if !ok {
			return filter.Rules{}, fmt.Errorf("unknown min severity %q (valid: error, warning, info, unknown)", minSeverity)
		}
		rules.MinSeverity = sev
	}
	for _, pattern := range append(append([]string(nil), only...), except...) {
		if _, err := path.Match(pattern, ""); err != nil {
			return filter.Rules{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
	}
	return rules, nil
}

// changedFiles caches the changed-file sets per base directory.
type changedFiles struct {
	git  git.Service
	ref  string
	sets map[string]map[string]bool
}

func newChangedFiles(svc git.Service, ref string) *changedFiles {
	return &changedFiles{git: svc, ref: ref, sets: make(map[string]map[string]bool)}
}

// under returns the set of files changed under dir, or nil when no ref was given.
func (c *changedFiles) under(ctx context.Context, dir string) (map[string]bool, error) {
	if c.ref == "" {
		return nil, nil
	}
	if set, ok := c.sets[dir]; ok {
		return set, nil
	}
	if c.git == nil {
		return nil, fmt.Errorf("--changed-since %s: git is not available", c.ref)
	}

	files, err := c.git.ChangedFiles(ctx, dir, c.ref)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[f] = true
	}
	logger.FromContext(ctx).Debug("changed files", "dir", dir, "ref", c.ref, "count", len(set))

	c.sets[dir] = set
	return set, nil
}

// filterSkippedLogs removes logs matching --skip names.
func filterSkippedLogs(logs []config.LogEntry, skipNames []string) []config.LogEntry {
	if len(skipNames) == 0 {
		return logs
	}

	skipSet := make(map[string]bool, len(skipNames))
	for _, name := range skipNames {
		skipSet[name] = true
	}

	var result []config.LogEntry
	for _, l := range logs {
		if skipSet[l.Name] {
			continue
		}
		result = append(result, l)
	}
	return result
}
