package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/savoirtech/ctop/internal/errors"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile  string
	demoFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ctop",
	Short: "Live route statistics for a routing context",
	Long: `ctop shows a top-style, continuously refreshed table of the routes
running in one routing context: exchange counts and processing times,
sorted by the column of your choice.

Examples:
  ctop top billing
  ctop top billing --sort MeanProcessingTime --reverse
  ctop contexts`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.ctop.yaml or ~/.config/ctop/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&demoFile, "demo", "", "workload topology file (default: built-in demo)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

// describeError turns cobra's plain usage errors into the structured form
// every other ctop error already has.
func describeError(err error) string {
	if isUnknownCommandError(err) {
		msg := err.Error()
		if name := extractUnknownCommand(err); name != "" {
			msg = fmt.Sprintf("Unknown command: %s", name)
		}
		return errors.New(errors.ErrConfig, msg, "Run 'ctop --help' to see the available commands").Error()
	}
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return structured.Error()
	}
	return errors.WrapWithCode(err, errors.ErrConfig, "Invalid command line", "Run 'ctop --help' for usage").Error()
}

// isUnknownCommandError reports whether err comes from cobra rejecting a
// command or flag it does not know.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand returns the quoted command name from a cobra
// "unknown command" error, or "" when there is none.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
