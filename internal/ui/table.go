package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	// Apply styling
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Unfocused tables have no selection to show.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// ContextRow is one line of the contexts listing.
type ContextRow struct {
	Name    string
	Version string
	Status  string
	Uptime  string
	Routes  int
}

// RenderContextTable renders the known contexts as a table.
func RenderContextTable(rows []ContextRow) string {
	if len(rows) == 0 {
		return "No contexts running"
	}

	nameWidth := len("CONTEXT")
	for _, r := range rows {
		if w := lipgloss.Width(r.Name); w > nameWidth {
			nameWidth = w
		}
	}

	columns := []TableColumn{
		{Title: " ", Width: 1},
		{Title: "CONTEXT", Width: nameWidth},
		{Title: "VERSION", Width: 10},
		{Title: "STATUS", Width: 10},
		{Title: "UPTIME", Width: 12},
		{Title: "ROUTES", Width: 6},
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			StatusSymbol(r.Status),
			r.Name,
			r.Version,
			r.Status,
			r.Uptime,
			strconv.Itoa(r.Routes),
		}
	}
	return RenderSimpleTable(columns, cells)
}
