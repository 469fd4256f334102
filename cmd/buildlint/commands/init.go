package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/irahardianto/buildlint/internal/engine/config"
	"github.com/irahardianto/buildlint/internal/platform/logger"
	"github.com/spf13/cobra"
)

// InitFS abstracts file system operations needed by the init command.
type InitFS interface {
	Stat(name string) (fs.FileInfo, error)
	IsNotExist(err error) bool
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// osInitFS implements InitFS on the real file system.
type osInitFS struct{}

func (osInitFS) Stat(name string) (fs.FileInfo, error)       { return os.Stat(name) }
func (osInitFS) IsNotExist(err error) bool                   { return os.IsNotExist(err) }
func (osInitFS) MkdirAll(dir string, perm fs.FileMode) error { return os.MkdirAll(dir, perm) }
func (osInitFS) ReadDir(name string) ([]fs.DirEntry, error)  { return os.ReadDir(name) }

// WriteFile writes the generated config. The file holds no secrets.
func (osInitFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm) // #nosec G306 -- generated config, not sensitive
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize buildlint in the current project",
	Long: `Detect the project's .NET solution or project files and generate a default
.buildlint/logs.yaml describing where captured build logs live.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("init started")

		projectDir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		if err := initProject(ctx, projectDir, osInitFS{}, cmd.OutOrStdout()); err != nil {
			return err
		}

		log.Info("init completed")
		return nil
	},
}

// initProject performs the init workflow with injected dependencies for testability.
func initProject(ctx context.Context, projectDir string, fsys InitFS, out io.Writer) error {
	// 1. Create .buildlint directory if it doesn't exist.
	blDir := filepath.Join(projectDir, filepath.Dir(config.DefaultPath))
	if err := fsys.MkdirAll(blDir, 0o750); err != nil {
		return fmt.Errorf("creating .buildlint directory: %w", err)
	}

	// 2. Generate default logs.yaml if it doesn't exist.
	configPath := filepath.Join(projectDir, config.DefaultPath)
	if _, err := fsys.Stat(configPath); !fsys.IsNotExist(err) {
		fmt.Fprintf(out, "⚡ Config already exists at %s. Skipping generation.\n", configPath)
		return nil
	}

	entries, err := fsys.ReadDir(projectDir)
	if err != nil {
		return fmt.Errorf("reading project directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}

	projects := config.DetectProjects(files)
	logger.FromContext(ctx).Debug("detected projects", "count", len(projects))

	if err := fsys.WriteFile(configPath, []byte(config.GenerateLogsYAML(projects)), 0o644); err != nil { // #nosec G306 -- config file, not sensitive
		return fmt.Errorf("writing logs.yaml: %w", err)
	}

	if len(projects) > 0 {
		fmt.Fprintf(out, "✅ Detected %s. Generated %s.\n", formatProjects(projects), configPath)
	} else {
		fmt.Fprintf(out, "📝 No solution or project file detected. Created minimal %s — customize it.\n", configPath)
	}

	fmt.Fprintln(out, "🔎 Buildlint initialized successfully!")
	return nil
}

// formatProjects returns a human-readable list of detected entry points.
func formatProjects(projects []config.Project) string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.File)
	}
	return strings.Join(names, " + ")
}

func init() {
	rootCmd.AddCommand(initCmd)
}
