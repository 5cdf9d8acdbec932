package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/errors"
	"github.com/savoirtech/ctop/internal/logger"
	"github.com/spf13/cobra"
)

// Command-specific flags
var topFlags TopFlags

// topCmd shows the live route table of one context
var topCmd = &cobra.Command{
	Use:   "top <context>",
	Short: "Live route statistics for a context",
	Long: `Continuously poll the route counters of a routing context and redraw
them as a table, sorted by one column.

Sort columns:
  ExchangesTotal, ExchangesCompleted, ExchangesFailed, MinProcessingTime,
  MaxProcessingTime, MeanProcessingTime, TotalProcessingTime, LastProcessingTime

Keyboard shortcuts (--tui):
  s / S       Next / previous sort column
  r           Reverse sort order
  Space       Refresh now
  ?           Show help
  q, Ctrl+C   Quit

Examples:
  ctop top billing
  ctop top billing -u 500
  ctop top billing --sort MeanProcessingTime --reverse
  ctop top billing --tui`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.ReadDefault(cfgFile)
		if err != nil {
			return err
		}
		// Flags are applied before anything is validated.
		merged, _, err := resolveConfig(cfg, topFlags, cmd.Flags().Changed)
		if err != nil {
			return err
		}

		log := logger.NewEnvLogger("[ctop]")
		host, topo, err := buildRuntime(demoFile, merged.Domain)
		if err != nil {
			return err
		}
		defer host.Shutdown()
		stopWorkload := startWorkload(ctx, host, topo, log)
		defer stopWorkload()

		env := &environment{
			host:   host,
			stdout: cmd.OutOrStdout(),
			log:    log,
		}
		return topCommand(ctx, env, cfg, args[0], topFlags, cmd.Flags().Changed)
	},
}

// contextsCmd lists the running contexts
var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "List running contexts",
	Long: `List the contexts of the routing runtime with their version, status,
uptime and number of routes.

Examples:
  ctop contexts
  ctop contexts --demo ./topology.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadDefault(cfgFile)
		if err != nil {
			return err
		}

		host, _, err := buildRuntime(demoFile, cfg.Domain)
		if err != nil {
			return err
		}
		defer host.Shutdown()

		return contextsCommand(cmd.OutOrStdout(), host)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ctop.

Examples:
  # Bash
  ctop completion bash > /etc/bash_completion.d/ctop

  # Zsh
  ctop completion zsh > "${fpath[1]}/_ctop"

  # Fish
  ctop completion fish > ~/.config/fish/completions/ctop.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// top command flags
	AddTopFlags(topCmd, &topFlags)

	// Register all commands
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(contextsCmd)
	rootCmd.AddCommand(completionCmd)
}
