// Package testutil builds tables and spreadsheet files for tests.
package testutil

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
)

// Branch names used across fixtures. SciencesBranch carries non-ASCII text.
const (
	EngineeringBranch = "Enginyeria i Arquitectura"
	SciencesBranch    = "Ciències de la Salut"
)

// Years are the academic years of the fixtures, in chronological order.
var Years = []string{"2019-2020", "2020-2021", "2021-2022"}

// Row is one merged record; the five non-varying keys get fixed values.
type Row struct {
	Year        string
	Branch      string
	Dropout     float64
	Performance float64
}

// Merged builds a merged performance/dropout table. NaN metrics are missing.
func Merged(rows ...Row) *dataset.Table {
	cols := append(dataset.KeyColumns(), dataset.ColPerformance, dataset.ColDropout)
	t := dataset.New("merged", cols)
	for _, r := range rows {
		t.AppendRow([]dataset.Value{
			dataset.TextValue(r.Year),
			dataset.TextValue("Pública"),
			dataset.TextValue("UB"),
			dataset.TextValue("Grau"),
			dataset.TextValue(r.Branch),
			dataset.TextValue("Dona"),
			dataset.TextValue("S"),
			dataset.NumberValue(r.Performance),
			dataset.NumberValue(r.Dropout),
		})
	}
	return t
}

// TwoBranchRows is the reference scenario: the engineering branch rises in
// dropout and falls in performance, the sciences branch is flat.
func TwoBranchRows() []Row {
	return []Row{
		{Years[0], EngineeringBranch, 10, 80},
		{Years[1], EngineeringBranch, 12, 78},
		{Years[2], EngineeringBranch, 14, 76},
		{Years[0], SciencesBranch, 5, 90},
		{Years[1], SciencesBranch, 5, 90},
		{Years[2], SciencesBranch, 5, 90},
	}
}

// WriteXLSX writes rows (header first) into the first sheet of a new workbook.
func WriteXLSX(t testing.TB, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}
	require.NoError(t, f.SaveAs(path))
}

// PerformanceHeader is the source schema of the performance spreadsheet.
var PerformanceHeader = []any{
	"Curs Acadèmic", "Tipus universitat", "Universitat", "Unitat", "Sigles", "Tipus Estudi",
	"Branca", "Sexe", "Integrat S/N", "Crèdits ordinaris superats", "Crèdits ordinaris matriculats", "Taxa rendiment",
}

// DropoutHeader is the source schema of the dropout spreadsheet.
var DropoutHeader = []any{
	"Curs Acadèmic", "Naturalesa universitat responsable", "Universitat Responsable", "Sigles", "Tipus Estudi",
	"Branca", "Sexe Alumne", "Tipus de centre", "% Abandonament a primer curs",
}

// WriteSourceFiles writes raw performance and dropout workbooks into dir whose
// pipeline output is the TwoBranchRows scenario. Each performance value is
// split over two raw rows, and one extra year exists only on the performance
// side. It returns both paths.
func WriteSourceFiles(t testing.TB, dir string) (perfPath, dropPath string) {
	t.Helper()
	perf := [][]any{PerformanceHeader}
	drop := [][]any{DropoutHeader}
	for _, r := range TwoBranchRows() {
		for _, delta := range []float64{-1, 1} {
			perf = append(perf, []any{
				r.Year, "Pública", "Universitat de Barcelona", "Facultat", "UB", "Grau",
				r.Branch, "Dona", "S", 100, 120, r.Performance + delta,
			})
		}
		drop = append(drop, []any{
			r.Year, "Pública", "Universitat de Barcelona", "UB", "Grau",
			r.Branch, "Dona", "S", r.Dropout,
		})
	}
	perf = append(perf, []any{
		"2022-2023", "Pública", "Universitat de Barcelona", "Facultat", "UB", "Grau",
		EngineeringBranch, "Dona", "S", 100, 120, 50.0,
	})
	perfPath = filepath.Join(dir, "rendiment_estudiants.xlsx")
	dropPath = filepath.Join(dir, "taxa_abandonament.xlsx")
	WriteXLSX(t, perfPath, perf)
	WriteXLSX(t, dropPath, drop)
	return perfPath, dropPath
}

// NaN is shorthand for a missing metric in Row literals.
var NaN = math.NaN()
