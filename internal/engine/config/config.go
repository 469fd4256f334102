// Package config handles parsing and validation of buildlint configuration files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/irahardianto/buildlint/internal/engine/parser"
	"github.com/irahardianto/buildlint/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the project-relative location of the config file.
var DefaultPath = filepath.Join(".buildlint", "logs.yaml")

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("no .buildlint/logs.yaml found. Run 'buildlint init' first")

// BuildlintConfig is the top-level project configuration.
type BuildlintConfig struct {
	Version  int        `yaml:"version"`
	Defaults Defaults   `yaml:"defaults"`
	Logs     []LogEntry `yaml:"logs"`
}

// Defaults holds default values that are applied to logs missing optional fields.
type Defaults struct {
	BaseDir     string `yaml:"base_dir"`
	OnMismatch  string `yaml:"on_mismatch"`
	Blocking    *bool  `yaml:"blocking"`
	MinSeverity string `yaml:"min_severity"`
}

// LogEntry describes one captured build log to parse.
type LogEntry struct {
	Name        string   `yaml:"name"`
	Path        string   `yaml:"path"`
	Type        string   `yaml:"type"`
	BaseDir     string   `yaml:"base_dir,omitempty"`
	OnMismatch  string   `yaml:"on_mismatch,omitempty"`
	Blocking    *bool    `yaml:"blocking,omitempty"`
	Only        []string `yaml:"only,omitempty"`
	Except      []string `yaml:"except,omitempty"`
	MinSeverity string   `yaml:"min_severity,omitempty"`
	DropInvalid bool     `yaml:"drop_invalid,omitempty"`
}

// IsBlocking returns whether a failure in this log fails the run.
// Falls back to true if not explicitly set.
func (l *LogEntry) IsBlocking() bool {
	if l.Blocking != nil {
		return *l.Blocking
	}
	return true
}

// MismatchPolicy returns the configured policy, defaulting to abort.
// The value is validated on load.
func (l *LogEntry) MismatchPolicy() parser.MismatchPolicy {
	p, err := parser.ParseMismatchPolicy(l.OnMismatch)
	if err != nil {
		return parser.MismatchAbort
	}
	return p
}

// ResolveBaseDir returns the log's base directory as an absolute path.
// A relative base_dir (or none) is taken relative to projectDir.
func (l *LogEntry) ResolveBaseDir(projectDir string) string {
	switch {
	case l.BaseDir == "":
		return projectDir
	case parser.IsAbsPath(l.BaseDir):
		return l.BaseDir
	default:
		return filepath.Join(projectDir, l.BaseDir)
	}
}

// ResolvePath returns the log file path, relative paths taken against projectDir.
func (l *LogEntry) ResolvePath(projectDir string) string {
	if l.Path == "-" || filepath.IsAbs(l.Path) {
		return l.Path
	}
	return filepath.Join(projectDir, l.Path)
}

// Loader handles loading configuration from the file system.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a new Loader with the given file system.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and parses a logs.yaml configuration file from the given path.
// Returns ErrConfigNotFound if the file does not exist.
func (l *Loader) Load(ctx context.Context, path string) (*BuildlintConfig, error) {
	logger.FromContext(ctx).Debug("loading config file", "path", path)
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg BuildlintConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing logs.yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads and parses a logs.yaml configuration file using the real file system.
// Returns ErrConfigNotFound if the file does not exist.
func Load(ctx context.Context, path string) (*BuildlintConfig, error) {
	return NewLoader(&RealFileSystem{}).Load(ctx, path)
}

// applyDefaults applies values from the defaults section to logs missing optional fields.
func applyDefaults(cfg *BuildlintConfig) {
	for i := range cfg.Logs {
		l := &cfg.Logs[i]

		if l.BaseDir == "" && cfg.Defaults.BaseDir != "" {
			l.BaseDir = cfg.Defaults.BaseDir
		}
		if l.OnMismatch == "" && cfg.Defaults.OnMismatch != "" {
			l.OnMismatch = cfg.Defaults.OnMismatch
		}
		if l.Blocking == nil && cfg.Defaults.Blocking != nil {
			val := *cfg.Defaults.Blocking
			l.Blocking = &val
		}
		if l.MinSeverity == "" && cfg.Defaults.MinSeverity != "" {
			l.MinSeverity = cfg.Defaults.MinSeverity
		}
	}
}

// validate checks every log entry and returns all problems joined, so users can fix all at once.
func validate(cfg *BuildlintConfig) error {
	known := parser.DefaultRegistry()
	seen := make(map[string]bool, len(cfg.Logs))

	var errs []error
	for i, l := range cfg.Logs {
		if l.Name == "" {
			errs = append(errs, fmt.Errorf("log at position %d has missing required field 'name'", i+1))
			continue
		}
		if seen[l.Name] {
			errs = append(errs, fmt.Errorf("log %q: duplicate name", l.Name))
		}
		seen[l.Name] = true

		if l.Path == "" {
			errs = append(errs, fmt.Errorf("log %q: missing required field 'path'", l.Name))
		}

		switch {
		case l.Type == "":
			errs = append(errs, fmt.Errorf("log %q: missing required field 'type'", l.Name))
		case known.Get(parser.ProjectType(l.Type)) == nil:
			errs = append(errs, fmt.Errorf("log %q: unknown log type %q (valid: %v)", l.Name, l.Type, known.Types()))
		}

		if _, err := parser.ParseMismatchPolicy(l.OnMismatch); err != nil {
			errs = append(errs, fmt.Errorf("log %q: %w", l.Name, err))
		}
		if l.MinSeverity != "" {
			if _, ok := parser.ParseSeverity(l.MinSeverity); !ok {
				errs = append(errs, fmt.Errorf("log %q: unknown min_severity %q (valid: error, warning, info, unknown)", l.Name, l.MinSeverity))
			}
		}
	}

	return errors.Join(errs...)
}

// osGetwd is a variable for testability (defaults to os.Getwd).
var osGetwd = os.Getwd

// ProjectDir returns the directory the config paths are relative to: the
// parent of the .buildlint directory holding configPath, or the working
// directory when configPath is relative to it.
func ProjectDir(configPath string) (string, error) {
	dir := filepath.Dir(filepath.Clean(configPath))
	if filepath.Base(dir) == ".buildlint" {
		dir = filepath.Dir(dir)
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	wd, err := osGetwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return filepath.Join(wd, dir), nil
}
