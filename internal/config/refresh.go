package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/savoirtech/ctop/internal/errors"
)

// DefaultIntervalMillis is the refresh interval used when none is configured.
const DefaultIntervalMillis = 1000

// MaxIntervalMillis is the longest interval a time.Duration can hold.
const MaxIntervalMillis = math.MaxInt64 / int64(time.Millisecond)

// RefreshConfig is the per-run configuration of the refresh loop. It is
// built once at startup and passed by value.
type RefreshConfig struct {
	Interval   time.Duration
	SortColumn DisplayColumn
	Reverse    bool
}

// DefaultRefreshConfig returns 1000 ms, ExchangesTotal, ascending.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Interval:   DefaultIntervalMillis * time.Millisecond,
		SortColumn: ExchangesTotal,
	}
}

// NewRefreshConfig builds and validates a RefreshConfig.
func NewRefreshConfig(intervalMillis int, column string, reverse bool) (RefreshConfig, error) {
	if int64(intervalMillis) > MaxIntervalMillis {
		return RefreshConfig{}, intervalTooLong(strconv.Itoa(intervalMillis))
	}
	col, err := ParseColumn(column)
	if err != nil {
		return RefreshConfig{}, err
	}
	cfg := RefreshConfig{
		Interval:   time.Duration(intervalMillis) * time.Millisecond,
		SortColumn: col,
		Reverse:    reverse,
	}
	if err := cfg.Validate(); err != nil {
		return RefreshConfig{}, err
	}
	return cfg, nil
}

// ParseIntervalMillis parses a refresh interval given in whole milliseconds.
func ParseIntervalMillis(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", s),
			"Use a whole number of milliseconds, like 1000")
	}
	if n <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", s),
			"The interval must be greater than 0 ms")
	}
	if int64(n) > MaxIntervalMillis {
		return 0, intervalTooLong(s)
	}
	return n, nil
}

func intervalTooLong(s string) error {
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Invalid interval: %s", s),
		fmt.Sprintf("The interval must be at most %d ms", MaxIntervalMillis))
}

// Validate rejects a non-positive interval or an unknown sort column.
func (c RefreshConfig) Validate() error {
	if c.Interval < time.Millisecond {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %d ms", c.Interval.Milliseconds()),
			"The interval must be greater than 0 ms")
	}
	if !c.SortColumn.Valid() {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown sort column: %s", c.SortColumn),
			"Valid columns: "+strings.Join(ColumnNames(), ", "))
	}
	return nil
}

// IntervalMillis returns the interval in milliseconds.
func (c RefreshConfig) IntervalMillis() int64 {
	return c.Interval.Milliseconds()
}

// Direction names the sort direction for display.
func (c RefreshConfig) Direction() string {
	if c.Reverse {
		return "descending"
	}
	return "ascending"
}
