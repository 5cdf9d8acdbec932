package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/errors"
	"github.com/savoirtech/ctop/internal/logger"
	"github.com/savoirtech/ctop/internal/monitor"
	"github.com/savoirtech/ctop/internal/routing"
	"github.com/savoirtech/ctop/internal/ui"
)

// environment carries what a command needs from the process.
type environment struct {
	host     *routing.Runtime
	stdout   io.Writer
	log      logger.Logger
	loopOpts []monitor.LoopOption
}

// topCommand monitors the routes of one context until ctx is cancelled.
// Every error it returns is a startup error; once the refresh loop runs,
// failures are contained in their cycle.
func topCommand(ctx context.Context, env *environment, cfg *config.Config, name string, flags TopFlags, changed func(string) bool) error {
	cfg, refresh, err := resolveConfig(cfg, flags, changed)
	if err != nil {
		return err
	}

	handle, ok := env.host.ResolveContext(name)
	if !ok {
		return contextNotFound(name, env.host.ContextNames())
	}

	collector := monitor.NewCollector(env.host.Registry(),
		monitor.WithDomain(cfg.Domain),
		monitor.WithCollectorLogger(env.log))
	renderer := monitor.NewRenderer(env.stdout, monitor.WithColorMode(cfg.Color))

	if flags.TUI {
		if ui.IsTerminal(env.stdout) {
			return runInteractive(ctx, env, handle, collector, renderer, refresh)
		}
		env.log.Debug("stdout is not a terminal, falling back to plain output")
	}

	opts := append([]monitor.LoopOption{monitor.WithLogger(env.log)}, env.loopOpts...)
	loop, err := monitor.NewLoop(handle, collector, renderer, refresh, opts...)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}

// runInteractive runs the bubbletea model in the alternate screen.
func runInteractive(ctx context.Context, env *environment, handle monitor.Context, source monitor.Source, renderer *monitor.Renderer, refresh config.RefreshConfig) error {
	model, err := monitor.NewModel(handle, source, renderer, refresh, monitor.WithModelLogger(env.log))
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(env.stdout))
	if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// contextNotFound builds the diagnostic for an unknown context name.
func contextNotFound(name string, known []string) error {
	suggestion := "No contexts are running"
	if len(known) > 0 {
		suggestion = "Known contexts: " + strings.Join(known, ", ")
	}
	return errors.New(errors.ErrContext, fmt.Sprintf("Context %s not found.", name), suggestion)
}
