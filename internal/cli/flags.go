package cli

import (
	"strings"

	"github.com/savoirtech/ctop/internal/config"
	"github.com/spf13/cobra"
)

// TopFlags holds the flags of the top command.
type TopFlags struct {
	Updates string
	Sort    string
	Reverse bool
	TUI     bool
	NoColor bool
}

// AddTopFlags registers --updates, --sort, --reverse, --tui and --no-color on a command.
func AddTopFlags(cmd *cobra.Command, flags *TopFlags) {
	cmd.Flags().StringVarP(&flags.Updates, "updates", "u", "", "refresh interval in milliseconds (default 1000)")
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "", "sort column: "+strings.Join(config.ColumnNames(), ", "))
	cmd.Flags().BoolVarP(&flags.Reverse, "reverse", "r", false, "sort in descending order")
	cmd.Flags().BoolVar(&flags.TUI, "tui", false, "interactive mode with keyboard controls (needs a terminal)")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "disable colored output")
}

// resolveConfig applies the flags the user actually set on top of the
// file/env config, then validates the merged result. A bad file or env
// value that a flag replaces is never reported.
func resolveConfig(cfg *config.Config, flags TopFlags, changed func(name string) bool) (*config.Config, config.RefreshConfig, error) {
	merged := *cfg
	if changed("updates") {
		n, err := config.ParseIntervalMillis(flags.Updates)
		if err != nil {
			return nil, config.RefreshConfig{}, err
		}
		merged.Interval = n
	}
	if changed("sort") {
		merged.Sort = flags.Sort
	}
	if changed("reverse") {
		merged.Reverse = flags.Reverse
	}
	if flags.NoColor {
		merged.Color = config.ColorNever
	}

	if err := merged.Validate(); err != nil {
		return nil, config.RefreshConfig{}, err
	}
	refresh, err := merged.Refresh()
	if err != nil {
		return nil, config.RefreshConfig{}, err
	}
	return &merged, refresh, nil
}
