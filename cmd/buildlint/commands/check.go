package commands

import (
	"errors"
	"os"

	"github.com/irahardianto/buildlint/internal/engine/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig       string
	flagSkip         []string
	flagChangedSince string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Parse every configured build log and fail on errors",
	Long: `Parse all logs listed in .buildlint/logs.yaml in parallel. Exit 0 if all
blocking logs parse cleanly without error-severity items, exit 1 otherwise.
Non-blocking log failures are reported but do not affect the exit code.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := runCheck(cmd.Context(), flagConfig, flagSkip, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if errors.Is(err, ErrLogsFailed) {
			os.Exit(1)
		}
		return err
	},
}

func init() {
	checkCmd.Flags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to the logs.yaml configuration file")
	checkCmd.Flags().StringSliceVar(&flagSkip, "skip", nil, "Skip specific logs by name")
	checkCmd.Flags().StringVar(&flagChangedSince, "changed-since", "", "Only report items in files changed since this git ref")
	rootCmd.AddCommand(checkCmd)
}
