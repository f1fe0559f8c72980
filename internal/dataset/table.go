package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned when a table lacks a column an operation needs.
var ErrMissingColumn = errors.New("missing column")

// ValueKind tells how a cell was typed at load time.
type ValueKind uint8

const (
	Null ValueKind = iota
	Text
	Number
)

// Value is a single table cell. Numbers keep their text form so that key
// comparisons always go through Text.
type Value struct {
	Kind ValueKind
	Text string
	Num  float64
}

// NullValue returns a missing cell.
func NullValue() Value { return Value{Kind: Null} }

// TextValue returns a text cell; empty or whitespace-only strings are missing.
func TextValue(s string) Value {
	if strings.TrimSpace(s) == "" {
		return NullValue()
	}
	return Value{Kind: Text, Text: s}
}

// NumberValue returns a numeric cell. NaN becomes a missing cell.
func NumberValue(f float64) Value {
	if math.IsNaN(f) {
		return NullValue()
	}
	return Value{Kind: Number, Text: strconv.FormatFloat(f, 'f', -1, 64), Num: f}
}

// IsNull reports whether the cell is missing.
func (v Value) IsNull() bool { return v.Kind == Null }

// Float returns the numeric content of the cell.
func (v Value) Float() (float64, bool) {
	if v.Kind != Number {
		return math.NaN(), false
	}
	return v.Num, true
}

// String renders the cell for display; missing cells print as NaN.
func (v Value) String() string {
	if v.Kind == Null {
		return "NaN"
	}
	return v.Text
}

// Table is an in-memory, column-named grid of cells. Operations that
// transform a table return a new one and leave the receiver untouched.
type Table struct {
	Name    string
	columns []string
	rows    [][]Value
}

// New creates an empty table with the given columns.
func New(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, columns: cols}
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	for i, c := range t.columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether the table has every named column.
func (t *Table) Has(cols ...string) bool {
	for _, c := range cols {
		if t.Index(c) < 0 {
			return false
		}
	}
	return true
}

// Require returns an error wrapping ErrMissingColumn naming every absent column.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if t.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
}

// AppendRow adds a row, padding with missing cells or truncating to the
// column count.
func (t *Table) AppendRow(row []Value) {
	r := make([]Value, len(t.columns))
	copy(r, row)
	t.rows = append(t.rows, r)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Value returns the cell at row i, column col. Unknown columns read as missing.
func (t *Table) Value(i int, col string) Value {
	j := t.Index(col)
	if j < 0 {
		return NullValue()
	}
	return t.rows[i][j]
}

// Floats returns the numeric content of col, NaN where a cell is missing or
// not numeric.
func (t *Table) Floats(col string) []float64 {
	j := t.Index(col)
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		if j < 0 {
			out[i] = math.NaN()
			continue
		}
		out[i], _ = r[j].Float()
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.Name, t.columns)
	c.rows = make([][]Value, len(t.rows))
	for i, r := range t.rows {
		c.rows[i] = make([]Value, len(r))
		copy(c.rows[i], r)
	}
	return c
}

// Rename returns a copy with columns renamed per mapping (old -> new).
// Mapping entries for absent columns are ignored.
func (t *Table) Rename(mapping map[string]string) *Table {
	c := t.Clone()
	for i, name := range c.columns {
		if to, ok := mapping[name]; ok {
			c.columns[i] = to
		}
	}
	return c
}

// Drop returns a copy without the named columns. Absent names are ignored.
func (t *Table) Drop(cols ...string) *Table {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		drop[c] = true
	}
	var keep []int
	var names []string
	for i, name := range t.columns {
		if !drop[name] {
			keep = append(keep, i)
			names = append(names, name)
		}
	}
	out := New(t.Name, names)
	out.rows = make([][]Value, len(t.rows))
	for i, r := range t.rows {
		nr := make([]Value, len(keep))
		for k, j := range keep {
			nr[k] = r[j]
		}
		out.rows[i] = nr
	}
	return out
}

// Filter returns a copy holding only the rows for which keep returns true.
func (t *Table) Filter(keep func(row []Value) bool) *Table {
	out := New(t.Name, t.columns)
	for _, r := range t.rows {
		if keep(r) {
			nr := make([]Value, len(r))
			copy(nr, r)
			out.rows = append(out.rows, nr)
		}
	}
	return out
}

// Distinct returns the distinct non-missing text values of col in order of
// first appearance.
func (t *Table) Distinct(col string) []string {
	j := t.Index(col)
	if j < 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range t.rows {
		v := r[j]
		if v.IsNull() || seen[v.Text] {
			continue
		}
		seen[v.Text] = true
		out = append(out, v.Text)
	}
	return out
}
