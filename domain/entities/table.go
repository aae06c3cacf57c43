package entities

import (
	"time"

	"github.com/SGMOModeling/gowfm/domain/errors"
)

// Table is a time-indexed block of values, the shape budget and zone
// budget reads come back in. Times holds the row index; Data is
// row-major with one row per time step and one value per column.
type Table struct {
	Columns []string
	Times   []time.Time
	Data    [][]float64
}

// NumRows returns the number of time steps in the table.
func (t Table) NumRows() int {
	return len(t.Times)
}

// NumColumns returns the number of value columns in the table.
func (t Table) NumColumns() int {
	return len(t.Columns)
}

// Column returns the values of the named column, or false when the
// table has no such column.
func (t Table) Column(name string) ([]float64, bool) {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(t.Data))
		for i, row := range t.Data {
			out[i] = row[j]
		}
		return out, true
	}
	return nil, false
}

// Row returns the values at time step i.
func (t Table) Row(i int) []float64 {
	return t.Data[i]
}

// Validate checks that the row count matches the time index and every
// row matches the column count.
func (t Table) Validate() error {
	if len(t.Data) != len(t.Times) {
		return &errors.DimensionError{What: "table rows", Want: len(t.Times), Got: len(t.Data)}
	}
	for _, row := range t.Data {
		if len(row) != len(t.Columns) {
			return &errors.DimensionError{What: "table row", Want: len(t.Columns), Got: len(row)}
		}
	}
	return nil
}

// TimeSeries is a single column of values over time.
type TimeSeries struct {
	Times  []time.Time
	Values []float64
}

// Len returns the number of points in the series.
func (s TimeSeries) Len() int {
	return len(s.Times)
}

// Validate checks that times and values pair up.
func (s TimeSeries) Validate() error {
	if len(s.Values) != len(s.Times) {
		return &errors.DimensionError{What: "series values", Want: len(s.Times), Got: len(s.Values)}
	}
	return nil
}

// TimeSpecs describes the time axis of a model or results file: every
// output timestamp plus the step interval.
type TimeSpecs struct {
	Timestamps []string
	Interval   string
}

// Span returns the first and last timestamps. Both are empty when the
// file holds no time steps.
func (ts TimeSpecs) Span() (begin, end string) {
	if len(ts.Timestamps) == 0 {
		return "", ""
	}
	return ts.Timestamps[0], ts.Timestamps[len(ts.Timestamps)-1]
}

// Contains reports whether stamp is one of the output timestamps.
func (ts TimeSpecs) Contains(stamp string) bool {
	for _, t := range ts.Timestamps {
		if t == stamp {
			return true
		}
	}
	return false
}
