// Package chart renders the year-by-year evolution of dropout and performance
// per branch.
package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
	"github.com/KaramelBytes/edutrend-cli/internal/utils"
)

// Options controls where and how large the figure is rendered.
type Options struct {
	Dir    string
	File   string
	DPI    int
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions renders a 14x10 inch PNG at 300 DPI into img/.
func DefaultOptions() Options {
	return Options{
		Dir:    "img",
		File:   "evolucion_ramas.png",
		DPI:    300,
		Width:  14 * vg.Inch,
		Height: 10 * vg.Inch,
	}
}

// panel describes one of the stacked line charts.
type panel struct {
	metric string
	title  string
	ylabel string
	xlabel string
}

var panels = []panel{
	{
		metric: dataset.ColDropout,
		title:  "Evolución del % de Abandono por curso académico",
		ylabel: "% Abandono",
	},
	{
		metric: dataset.ColPerformance,
		title:  "Evolución de la Tasa de Rendimiento por curso académico",
		ylabel: "Tasa de rendimiento",
		xlabel: "Curso Académico",
	},
}

// PlotTemporal draws two stacked panels sharing the academic-year axis, one
// line per branch, and writes them as a PNG. It returns the written path.
func PlotTemporal(t *dataset.Table, opt Options) (string, error) {
	if err := t.Require(dataset.ColYear, dataset.ColBranch, dataset.ColDropout, dataset.ColPerformance); err != nil {
		return "", fmt.Errorf("plot: %w", err)
	}
	def := DefaultOptions()
	if opt.DPI <= 0 {
		opt.DPI = def.DPI
	}
	if opt.Width <= 0 || opt.Height <= 0 {
		opt.Width, opt.Height = def.Width, def.Height
	}
	if opt.File == "" {
		opt.File = def.File
	}

	years := t.Distinct(dataset.ColYear)
	sort.Strings(years)
	branches := t.Distinct(dataset.ColBranch)
	sort.Strings(branches)

	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		p, err := linePanel(t, pn, years, branches)
		if err != nil {
			return "", err
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.NewWith(vgimg.UseWH(opt.Width, opt.Height), vgimg.UseDPI(opt.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
		PadY:      vg.Points(20),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if err := utils.EnsureDir(opt.Dir); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	path := filepath.Join(opt.Dir, opt.File)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return path, f.Close()
}

func linePanel(t *dataset.Table, pn panel, years, branches []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.title
	p.Y.Label.Text = pn.ylabel
	p.X.Label.Text = pn.xlabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	pos := make(map[string]int, len(years))
	for i, y := range years {
		pos[y] = i
	}
	for i, b := range branches {
		xys := branchSeries(t, b, pn.metric, pos)
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("plot %s line for %s: %w", pn.metric, b, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(b, line)
	}
	if len(years) > 0 {
		p.NominalX(years...)
	}
	return p, nil
}

// branchSeries returns the per-year mean of metric for one branch, placed at
// the year's position on the shared axis. Years without a value are skipped.
func branchSeries(t *dataset.Table, branch, metric string, pos map[string]int) plotter.XYs {
	sum := map[int]float64{}
	cnt := map[int]int{}
	for i := 0; i < t.Len(); i++ {
		if b := t.Value(i, dataset.ColBranch); b.IsNull() || b.Text != branch {
			continue
		}
		y := t.Value(i, dataset.ColYear)
		x, ok := t.Value(i, metric).Float()
		if y.IsNull() || !ok || math.IsNaN(x) {
			continue
		}
		sum[pos[y.Text]] += x
		cnt[pos[y.Text]]++
	}
	idx := make([]int, 0, len(cnt))
	for k := range cnt {
		idx = append(idx, k)
	}
	sort.Ints(idx)
	xys := make(plotter.XYs, len(idx))
	for i, k := range idx {
		xys[i].X = float64(k)
		xys[i].Y = sum[k] / float64(cnt[k])
	}
	return xys
}
