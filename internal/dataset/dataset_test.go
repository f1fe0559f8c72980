package dataset

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		kind ValueKind
		num  float64
	}{
		{"", Null, 0},
		{"   ", Null, 0},
		{"76.5", Number, 76.5},
		{"76,5", Number, 76.5},
		{"1.234,5", Number, 1234.5},
		{"1,234.5", Number, 1234.5},
		{"12,5%", Number, 12.5},
		{"-3", Number, -3},
		{"1e3", Number, 1000},
		{"2019-2020", Text, 0},
		{"2019/2020", Text, 0},
		{"Ciències", Text, 0},
		{"S", Text, 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := ParseValue(tt.raw)
			assert.Equal(t, tt.kind, v.Kind)
			if tt.kind == Number {
				assert.InDelta(t, tt.num, v.Num, 1e-9)
				assert.Equal(t, tt.raw, v.Text)
			}
		})
	}
}

func TestTableTransformsDoNotMutateInput(t *testing.T) {
	tb := New("t", []string{"a", "b", "c"})
	tb.AppendRow([]Value{TextValue("x"), NumberValue(1), NumberValue(2)})
	tb.AppendRow([]Value{TextValue("y"), NumberValue(3)})

	renamed := tb.Rename(map[string]string{"a": "A", "missing": "M"})
	dropped := tb.Drop("b", "nope")
	filtered := tb.Filter(func(r []Value) bool { return r[0].Text == "y" })

	assert.Equal(t, []string{"a", "b", "c"}, tb.Columns())
	assert.Equal(t, []string{"A", "b", "c"}, renamed.Columns())
	assert.Equal(t, []string{"a", "c"}, dropped.Columns())
	assert.Equal(t, 1, filtered.Len())
	assert.True(t, tb.Value(1, "c").IsNull(), "short rows are padded with missing cells")

	row := renamed.Row(0)
	row[0] = TextValue("changed")
	assert.Equal(t, "x", tb.Value(0, "a").Text)
	assert.Equal(t, "x", renamed.Value(0, "A").Text)
}

func TestRequireNamesMissingColumns(t *testing.T) {
	tb := New("t", []string{"a"})
	require.NoError(t, tb.Require("a"))
	err := tb.Require("a", "b", "c")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "b, c")
}

func TestFloatsAndDistinct(t *testing.T) {
	tb := New("t", []string{"k", "v"})
	tb.AppendRow([]Value{TextValue("b"), NumberValue(1)})
	tb.AppendRow([]Value{TextValue("a"), NullValue()})
	tb.AppendRow([]Value{TextValue("b"), TextValue("n/a")})
	tb.AppendRow([]Value{NullValue(), NumberValue(4)})

	vals := tb.Floats("v")
	require.Len(t, vals, 4)
	assert.Equal(t, 1.0, vals[0])
	assert.True(t, math.IsNaN(vals[1]))
	assert.True(t, math.IsNaN(vals[2]))
	assert.Equal(t, []string{"b", "a"}, tb.Distinct("k"))
	assert.True(t, NumberValue(math.NaN()).IsNull())
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"Curs Acadèmic", "Branca", "Taxa rendiment"},
		{"2019-2020", "Ciències", 80.5},
		{"2020-2021", nil, 81},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Other", "A1", "only"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tb, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "data.xlsx", tb.Name)
	assert.Equal(t, []string{"Curs Acadèmic", "Branca", "Taxa rendiment"}, tb.Columns())
	require.Equal(t, 2, tb.Len())
	assert.Equal(t, "2019-2020", tb.Value(0, "Curs Acadèmic").Text)
	v, ok := tb.Value(0, "Taxa rendiment").Float()
	require.True(t, ok)
	assert.InDelta(t, 80.5, v, 1e-9)
	assert.True(t, tb.Value(1, "Branca").IsNull())

	other, err := Load(path, LoadOptions{Sheet: "Other"})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, other.Columns())

	_, err = Load(path, LoadOptions{Sheet: "Nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1, Other")
}

func TestLoadCSVSniffsDelimiterAndDecimals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	body := "\ufeffCurs Acadèmic;Branca;% Abandonament a primer curs\n2019-2020;Ciències;12,5\n2020-2021;Ciències;\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	tb, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Curs Acadèmic", "Branca", "% Abandonament a primer curs"}, tb.Columns())
	require.Equal(t, 2, tb.Len())
	v, ok := tb.Value(0, "% Abandonament a primer curs").Float()
	require.True(t, ok)
	assert.InDelta(t, 12.5, v, 1e-9)
	assert.True(t, tb.Value(1, "% Abandonament a primer curs").IsNull())
}

func TestReadCSVTabs(t *testing.T) {
	tb, err := ReadCSV("x.tsv", strings.NewReader("a\tb\n1\t2\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tb.Columns())
	assert.Equal(t, 1, tb.Len())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.xlsx"), LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	other := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	_, err = Load(other, LoadOptions{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestCatalogResolve(t *testing.T) {
	c := Catalog{Performance: "data/rendiment_estudiants.xlsx", Dropout: "data/taxa_abandonament.xlsx"}

	p, err := c.Resolve(ChoicePerformance)
	require.NoError(t, err)
	assert.Equal(t, c.Performance, p)

	p, err = c.Resolve(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, c.Dropout, p)

	for _, bad := range []Choice{"", "3", "one"} {
		_, err := c.Resolve(bad)
		assert.True(t, errors.Is(err, ErrInvalidOption), "choice %q", bad)
	}
}

func TestPromptReadsInjectedInput(t *testing.T) {
	var out strings.Builder
	choice, err := Prompt(strings.NewReader("2\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, ChoiceDropout, choice)
	assert.Contains(t, out.String(), "Enter 1 or 2")

	choice, err = Prompt(strings.NewReader("1"), &out)
	require.NoError(t, err)
	assert.Equal(t, ChoicePerformance, choice)
}
