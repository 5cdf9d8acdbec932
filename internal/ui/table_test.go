package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 10},
	}
	rows := []table.Row{
		{"item1", "ok"},
		{"item2", "error"},
	}

	tbl := NewTable(columns, rows)

	view := tbl.View()
	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Status")
	assert.Contains(t, view, "item1")
	assert.Contains(t, view, "item2")
}

func TestNewTable_EmptyRows(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
	}

	tbl := NewTable(columns, []table.Row{})
	view := tbl.View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "Name")
}

func TestNewTable_ShowsEveryRow(t *testing.T) {
	columns := []TableColumn{{Title: "Name", Width: 10}}
	var rows []table.Row
	for _, name := range []string{"one", "two", "three", "four", "five"} {
		rows = append(rows, table.Row{name})
	}

	view := NewTable(columns, rows).View()

	for _, name := range []string{"one", "two", "three", "four", "five"} {
		assert.Contains(t, view, name)
	}
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Route", Width: 15},
		{Title: "Status", Width: 10},
	}
	rows := [][]string{
		{"orders", "Started"},
		{"invoices", "Stopped"},
	}

	output := RenderSimpleTable(columns, rows)

	assert.Contains(t, output, "Route")
	assert.Contains(t, output, "Status")
	assert.Contains(t, output, "orders")
	assert.Contains(t, output, "invoices")
	assert.Contains(t, output, "Started")
	assert.Contains(t, output, "Stopped")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
	}

	output := RenderSimpleTable(columns, [][]string{})
	assert.Empty(t, output)
}

func TestRenderContextTable(t *testing.T) {
	rows := []ContextRow{
		{Name: "billing", Version: "2.4.1", Status: "Started", Uptime: "1m30s", Routes: 3},
		{Name: "shipping-gateway-east", Version: "1.0.0", Status: "Stopped", Uptime: "0s", Routes: 0},
	}

	output := RenderContextTable(rows)

	for _, header := range []string{"CONTEXT", "VERSION", "STATUS", "UPTIME", "ROUTES"} {
		assert.Contains(t, output, header)
	}
	assert.Contains(t, output, "billing")
	assert.Contains(t, output, "shipping-gateway-east", "long names are not truncated")
	assert.Contains(t, output, "2.4.1")
	assert.Contains(t, output, "1m30s")
	assert.Contains(t, output, SymbolComplete)
	assert.Contains(t, output, SymbolPending)
	assert.Less(t, strings.Index(output, "billing"), strings.Index(output, "shipping"), "input order is kept")
}

func TestRenderContextTable_EmptyRows(t *testing.T) {
	assert.Equal(t, "No contexts running", RenderContextTable(nil))
}

func TestTableColumn(t *testing.T) {
	col := TableColumn{Title: "Test", Width: 10}
	assert.Equal(t, "Test", col.Title)
	assert.Equal(t, 10, col.Width)
}
