package config

import (
	"fmt"
	"strings"

	"github.com/savoirtech/ctop/internal/errors"
)

// DisplayColumn selects the route counter that drives sort order.
type DisplayColumn int

const (
	ExchangesTotal DisplayColumn = iota
	ExchangesCompleted
	ExchangesFailed
	MinProcessingTime
	MaxProcessingTime
	MeanProcessingTime
	TotalProcessingTime
	LastProcessingTime

	numColumns
)

// columnNames are also the management attribute names of the counters.
var columnNames = [numColumns]string{
	"ExchangesTotal",
	"ExchangesCompleted",
	"ExchangesFailed",
	"MinProcessingTime",
	"MaxProcessingTime",
	"MeanProcessingTime",
	"TotalProcessingTime",
	"LastProcessingTime",
}

var columnLabels = [numColumns]string{
	"Total",
	"Complete",
	"Failed",
	"Min",
	"Max",
	"Mean",
	"TotalTime",
	"Last",
}

// Columns returns every column in display order.
func Columns() []DisplayColumn {
	cols := make([]DisplayColumn, numColumns)
	for i := range cols {
		cols[i] = DisplayColumn(i)
	}
	return cols
}

// ColumnNames returns the accepted column names in display order.
func ColumnNames() []string {
	names := make([]string, numColumns)
	copy(names, columnNames[:])
	return names
}

// Valid reports whether c is one of the enumerated columns.
func (c DisplayColumn) Valid() bool {
	return c >= 0 && c < numColumns
}

// String returns the column name, which is also its attribute name.
func (c DisplayColumn) String() string {
	if !c.Valid() {
		return fmt.Sprintf("DisplayColumn(%d)", int(c))
	}
	return columnNames[c]
}

// Label returns the short header used in the table.
func (c DisplayColumn) Label() string {
	if !c.Valid() {
		return "?"
	}
	return columnLabels[c]
}

// Next cycles to the next column.
func (c DisplayColumn) Next() DisplayColumn {
	return DisplayColumn((int(c) + 1) % int(numColumns))
}

// Prev cycles to the previous column.
func (c DisplayColumn) Prev() DisplayColumn {
	return DisplayColumn((int(c) + int(numColumns) - 1) % int(numColumns))
}

// ParseColumn resolves a column name, ignoring case.
func ParseColumn(name string) (DisplayColumn, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range columnNames {
		if strings.EqualFold(n, trimmed) {
			return DisplayColumn(i), nil
		}
	}
	return 0, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown sort column: %s", name),
		"Valid columns: "+strings.Join(columnNames[:], ", "))
}
