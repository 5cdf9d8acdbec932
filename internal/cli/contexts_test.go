package cli

import (
	"bytes"
	"testing"

	"github.com/savoirtech/ctop/internal/config"
	"github.com/savoirtech/ctop/internal/routing"
	"github.com/savoirtech/ctop/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextsCommand(t *testing.T) {
	host, _, err := buildRuntime("", config.DefaultDomain)
	require.NoError(t, err)
	defer host.Shutdown()

	var buf bytes.Buffer
	require.NoError(t, contextsCommand(&buf, host))

	output := buf.String()
	assert.Contains(t, output, "CONTEXT")
	assert.Contains(t, output, "billing")
	assert.Contains(t, output, "shipping")
	assert.Contains(t, output, "2.14.1")
	assert.Contains(t, output, "Started")
	assert.Contains(t, output, ui.SymbolComplete)
}

func TestContextsCommand_ShowsStoppedContexts(t *testing.T) {
	host := routing.NewRuntime(nil)
	defer host.Shutdown()
	_, err := host.NewContext("idle", "0.1.0")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, contextsCommand(&buf, host))

	assert.Contains(t, buf.String(), "idle")
	assert.Contains(t, buf.String(), "Stopped")
	assert.Contains(t, buf.String(), ui.SymbolPending)
}

func TestContextsCommand_Empty(t *testing.T) {
	host := routing.NewRuntime(nil)
	defer host.Shutdown()

	var buf bytes.Buffer
	require.NoError(t, contextsCommand(&buf, host))
	assert.Equal(t, "No contexts running\n", buf.String())
}
