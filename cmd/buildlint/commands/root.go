// Package commands implements the CLI commands for buildlint.
package commands

import (
	"fmt"

	"github.com/irahardianto/buildlint/internal/engine/runner"
	"github.com/irahardianto/buildlint/internal/platform/logger"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	formatCLI   = "cli"
	formatJSON  = "json"
	formatSarif = "sarif"
)

// Global flag values accessible to all commands.
var (
	flagFormat      string
	flagVerbose     bool
	flagNoColor     bool
	flagConcurrency int
)

// rootCmd is the base command for the buildlint CLI.
var rootCmd = &cobra.Command{
	Use:   "buildlint",
	Short: "Turn MSBuild logs into structured lint items",
	Long: `Buildlint reads captured .NET build output (dotnet build / MSBuild) and SARIF
analyzer logs, extracts every diagnostic into a structured lint item with a
project-relative source path, and fails when a blocking log reports errors.

Structured JSON and SARIF output give CI systems and agents precise
file/line locations and fix hints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		switch flagFormat {
		case formatCLI, formatJSON, formatSarif:
		default:
			return fmt.Errorf("unknown format %q (valid: cli, json, sarif)", flagFormat)
		}

		l := logger.New(cmd.ErrOrStderr(), flagVerbose, flagFormat != formatCLI)
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", formatCLI, "Output format: cli, json or sarif")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Include raw log lines and debug logging in output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().IntVar(&flagConcurrency, "concurrency", runner.DefaultConcurrency, "Maximum number of logs parsed in parallel")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}
