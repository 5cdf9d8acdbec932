package cli

import (
	"fmt"
	"io"

	"github.com/savoirtech/ctop/internal/routing"
	"github.com/savoirtech/ctop/internal/ui"
)

// contextsCommand lists the contexts of the runtime with their status.
func contextsCommand(w io.Writer, host *routing.Runtime) error {
	var rows []ui.ContextRow
	for _, name := range host.ContextNames() {
		c, ok := host.ResolveContext(name)
		if !ok {
			continue
		}
		rows = append(rows, ui.ContextRow{
			Name:    c.Name(),
			Version: c.Version(),
			Status:  c.Status(),
			Uptime:  c.UptimeString(),
			Routes:  len(c.RouteIDs()),
		})
	}

	_, err := fmt.Fprintln(w, ui.RenderContextTable(rows))
	return err
}
