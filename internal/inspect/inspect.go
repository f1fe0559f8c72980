// Package inspect prints diagnostic views of a table: its first rows, its
// columns and a per-column schema summary.
package inspect

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
)

// Display controls how wide and how long printed tables are.
type Display struct {
	// HeadRows is the number of rows Head prints.
	HeadRows int
	// MaxColumns caps printed columns; 0 prints them all.
	MaxColumns int
}

// DefaultDisplay prints five rows and every column.
func DefaultDisplay() Display { return Display{HeadRows: 5} }

const ellipsis = "..."

// Head prints the first d.HeadRows rows.
func Head(w io.Writer, t *dataset.Table, d Display) {
	n := d.HeadRows
	if n <= 0 {
		n = DefaultDisplay().HeadRows
	}
	if n > t.Len() {
		n = t.Len()
	}
	cols := visibleColumns(t.Columns(), d.MaxColumns)

	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := []string{strconv.Itoa(i)}
		for _, c := range cols {
			if c == ellipsis {
				row = append(row, ellipsis)
				continue
			}
			row = append(row, t.Value(i, c).String())
		}
		rows = append(rows, row)
	}
	tb := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(append([]string{""}, cols...)...).
		Rows(rows...)
	fmt.Fprintf(w, "\nFirst %d rows:\n", n)
	fmt.Fprintln(w, tb.Render())
}

// Columns prints the column names in order.
func Columns(w io.Writer, t *dataset.Table) {
	fmt.Fprintln(w, "\nColumns:")
	for i, c := range t.Columns() {
		fmt.Fprintf(w, "  %d  %s\n", i, c)
	}
}

// Info prints the row count and, per column, its non-null count and dtype.
func Info(w io.Writer, t *dataset.Table) {
	cols := t.Columns()
	fmt.Fprintln(w, "\nInfo:")
	fmt.Fprintf(w, "Table: %s\n", t.Name)
	if t.Len() > 0 {
		fmt.Fprintf(w, "RangeIndex: %d entries, 0 to %d\n", t.Len(), t.Len()-1)
	} else {
		fmt.Fprintln(w, "RangeIndex: 0 entries")
	}
	fmt.Fprintf(w, "Data columns (total %d columns):\n", len(cols))

	rows := make([][]string, 0, len(cols))
	for i, c := range cols {
		nonNull, dtype := describe(t, c)
		rows = append(rows, []string{strconv.Itoa(i), c, fmt.Sprintf("%d non-null", nonNull), dtype})
	}
	tb := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("#", "Column", "Non-Null Count", "Dtype").
		Rows(rows...)
	fmt.Fprintln(w, tb.Render())
}

// describe counts non-null cells of col and infers its dtype: float64 when
// every non-null cell is numeric, object otherwise.
func describe(t *dataset.Table, col string) (int, string) {
	nonNull, numeric := 0, 0
	for i := 0; i < t.Len(); i++ {
		v := t.Value(i, col)
		if v.IsNull() {
			continue
		}
		nonNull++
		if v.Kind == dataset.Number {
			numeric++
		}
	}
	if numeric == nonNull {
		return nonNull, "float64"
	}
	return nonNull, "object"
}

// visibleColumns keeps the first and last columns around an ellipsis marker
// when there are more than limit.
func visibleColumns(cols []string, limit int) []string {
	if limit <= 0 || len(cols) <= limit {
		return cols
	}
	left := (limit + 1) / 2
	right := limit - left
	out := append([]string{}, cols[:left]...)
	out = append(out, ellipsis)
	return append(out, cols[len(cols)-right:]...)
}
