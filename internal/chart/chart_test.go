package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
	"github.com/KaramelBytes/edutrend-cli/internal/testutil"
)

func smallOptions(dir string) Options {
	return Options{Dir: dir, File: "evolucion_ramas.png", DPI: 72, Width: 6 * vg.Inch, Height: 4 * vg.Inch}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), 8)
	assert.Equal(t, "\x89PNG", string(b[:4]))
}

func TestPlotTemporalWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "img")
	path, err := PlotTemporal(testutil.Merged(testutil.TwoBranchRows()...), smallOptions(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "evolucion_ramas.png"), path)
	assertPNG(t, path)
}

func TestPlotTemporalEmptyAndSingleYear(t *testing.T) {
	dir := t.TempDir()

	opt := smallOptions(dir)
	opt.File = "empty.png"
	path, err := PlotTemporal(testutil.Merged(), opt)
	require.NoError(t, err)
	assertPNG(t, path)

	opt.File = "single.png"
	path, err = PlotTemporal(testutil.Merged(
		testutil.Row{Year: "2019-2020", Branch: "A", Dropout: 10, Performance: testutil.NaN},
	), opt)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestPlotTemporalRequiresColumns(t *testing.T) {
	_, err := PlotTemporal(dataset.New("x", []string{dataset.ColYear}), smallOptions(t.TempDir()))
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestBranchSeriesAveragesPerYear(t *testing.T) {
	tb := testutil.Merged(
		testutil.Row{Year: "2020-2021", Branch: "A", Dropout: 4, Performance: 1},
		testutil.Row{Year: "2019-2020", Branch: "A", Dropout: 2, Performance: 1},
		testutil.Row{Year: "2019-2020", Branch: "A", Dropout: 6, Performance: 1},
		testutil.Row{Year: "2019-2020", Branch: "B", Dropout: 100, Performance: 1},
		testutil.Row{Year: "2021-2022", Branch: "A", Dropout: testutil.NaN, Performance: 1},
	)
	pos := map[string]int{"2019-2020": 0, "2020-2021": 1, "2021-2022": 2}
	xys := branchSeries(tb, "A", dataset.ColDropout, pos)
	require.Len(t, xys, 2)
	assert.Equal(t, 0.0, xys[0].X)
	assert.Equal(t, 4.0, xys[0].Y)
	assert.Equal(t, 1.0, xys[1].X)
	assert.Equal(t, 4.0, xys[1].Y)
}
