package commands

import (
	"errors"
	"os"

	"github.com/irahardianto/buildlint/internal/engine/parser"
	"github.com/spf13/cobra"
)

var flagParse ParseOpts

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse build logs given on the command line",
	Long: `Parse one or more captured build logs without a config file. Use "-" to
read a log from stdin. Source paths are reported relative to --base-dir,
which defaults to the current directory. Exit 1 if any log fails to parse
or reports an error-severity item.`,
	Example: `  dotnet build -nologo -clp:NoSummary | buildlint parse -
  buildlint parse --format json --base-dir src artifacts/build.log
  buildlint parse --type sarif --min-severity warning analyzers.sarif`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runParse(cmd.Context(), args, flagParse, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if errors.Is(err, ErrLogsFailed) {
			os.Exit(1)
		}
		return err
	},
}

func init() {
	f := parseCmd.Flags()
	f.StringVar(&flagParse.Type, "type", string(parser.ProjectTypeMSBuild), "Log type: msbuild or sarif")
	f.StringVar(&flagParse.BaseDir, "base-dir", "", "Directory source paths are made relative to (default: working directory)")
	f.StringVar(&flagParse.OnMismatch, "on-mismatch", string(parser.MismatchAbort), "What to do with non-diagnostic lines: abort or skip")
	f.StringVar(&flagParse.MinSeverity, "min-severity", "", "Drop items below this severity: error, warning, info or unknown")
	f.StringSliceVar(&flagParse.Only, "only", nil, "Keep only items whose source matches these globs")
	f.StringSliceVar(&flagParse.Except, "except", nil, "Drop items whose source matches these globs")
	f.StringVar(&flagChangedSince, "changed-since", "", "Only report items in files changed since this git ref")
	rootCmd.AddCommand(parseCmd)
}
