// Package pipeline runs one end-to-end pass: load both datasets, normalize,
// aggregate, merge, then chart and report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"github.com/KaramelBytes/edutrend-cli/internal/analysis"
	"github.com/KaramelBytes/edutrend-cli/internal/chart"
	"github.com/KaramelBytes/edutrend-cli/internal/cleaning"
	cfgpkg "github.com/KaramelBytes/edutrend-cli/internal/config"
	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
	"github.com/KaramelBytes/edutrend-cli/internal/inspect"
)

// Runner carries what a run needs. Zero Logger, Out and Now fall back to
// slog.Default, io.Discard and time.Now.
type Runner struct {
	Config *cfgpkg.Global
	Logger *slog.Logger
	Out    io.Writer
	Now    func() time.Time
}

// Result summarizes a finished run.
type Result struct {
	PerformanceRows int
	DropoutRows     int
	MergedRows      int
	ReportPath      string
	ImagePath       string
	Report          *analysis.Report
}

// Run executes every stage in order. The first failing stage aborts the run.
// ctx is only checked between stages.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.Config == nil {
		return nil, fmt.Errorf("pipeline: no config")
	}
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	c := r.Config
	res := &Result{}
	started := time.Now()

	perf, err := r.prepare(ctx, log, c.PerformancePath(), cleaning.KindPerformance)
	if err != nil {
		return nil, err
	}
	drop, err := r.prepare(ctx, log, c.DropoutPath(), cleaning.KindDropout)
	if err != nil {
		return nil, err
	}
	res.PerformanceRows, res.DropoutRows = perf.Len(), drop.Len()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	merged, err := cleaning.Merge(perf, drop)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	res.MergedRows = merged.Len()
	log.Debug("merged datasets", slog.Int("rows", merged.Len()))

	disp := inspect.Display{HeadRows: c.HeadRows, MaxColumns: c.MaxColumns}
	inspect.Head(out, merged, disp)
	inspect.Columns(out, merged)
	inspect.Info(out, merged)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	copt := chart.DefaultOptions()
	copt.Dir, copt.File, copt.DPI = c.ImageDir, c.ImageFile, c.ImageDPI
	res.ImagePath, err = chart.PlotTemporal(merged, copt)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Figure saved to %s\n", res.ImagePath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Report, err = analysis.Analyze(merged, now())
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	res.ReportPath, err = res.Report.Write(c.ReportDir, c.ReportFile)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	if merged.Len() == 0 {
		color.New(color.FgYellow).Fprintln(out, "⚠ No rows matched between the two datasets; report is empty")
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Statistical analysis saved to %s\n", res.ReportPath)

	log.Info("run complete",
		slog.Int("performance_rows", res.PerformanceRows),
		slog.Int("dropout_rows", res.DropoutRows),
		slog.Int("merged_rows", res.MergedRows),
		slog.Int("branches", len(res.Report.Branches)),
		slog.Duration("elapsed", time.Since(started)))
	return res, nil
}

// prepare loads one dataset and takes it through rename, drop and group.
func (r *Runner) prepare(ctx context.Context, log *slog.Logger, path string, kind cleaning.Kind) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := dataset.Load(path, dataset.LoadOptions{Sheet: r.Config.Sheet})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	log.Debug("loaded dataset", slog.String("kind", string(kind)), slog.String("path", path), slog.Int("rows", t.Len()))

	t = cleaning.RenameColumns(t, kind)
	t = cleaning.DropColumns(t, kind)
	g, err := cleaning.GroupByBranch(t, kind)
	if err != nil {
		return nil, err
	}
	log.Debug("grouped dataset", slog.String("kind", string(kind)), slog.Int("groups", g.Len()))
	return g, nil
}
