// Package result holds the column-named record stream produced by each
// analysis and renders it as CSV.
package result

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Table is one analysis's output: a fixed header row and the successive
// solution rows recorded against it.
type Table struct {
	Headers []string
	rows    [][]float64
}

// NewTable builds an empty Table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{Headers: headers}
}

// Push appends one row. values must align positionally with Headers.
func (t *Table) Push(values map[string]float64) {
	row := make([]float64, len(t.Headers))
	for i, h := range t.Headers {
		row[i] = values[h]
	}
	t.rows = append(t.rows, row)
}

// Get extracts one column by header name.
func (t *Table) Get(label string) []float64 {
	col := -1
	for i, h := range t.Headers {
		if h == label {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[col]
	}
	return out
}

// WriteCSV renders the header and every row to w.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("result: %w", err)
	}
	for _, row := range t.rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("result: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
