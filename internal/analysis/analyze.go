package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
)

// DateLayout formats Metadata.Date.
const DateLayout = "2006-01-02"

// Analyze builds the report for a merged performance/dropout table. An empty
// table yields an empty branch map, null global statistics and empty rankings.
func Analyze(t *dataset.Table, now time.Time) (*Report, error) {
	if err := t.Require(dataset.ColYear, dataset.ColBranch, dataset.ColPerformance, dataset.ColDropout); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	dropout := t.Floats(dataset.ColDropout)
	perf := t.Floats(dataset.ColPerformance)

	years := t.Distinct(dataset.ColYear)
	sort.Strings(years)
	if years == nil {
		years = []string{}
	}
	rep := &Report{
		Metadata: Metadata{
			Date:    now.Format(DateLayout),
			Records: t.Len(),
			Years:   years,
		},
		Global: GlobalStats{
			DropoutMean:     Float(mean(dropout)),
			PerformanceMean: Float(mean(perf)),
			Correlation:     Float(pearson(dropout, perf)),
		},
		Branches: map[string]BranchStats{},
	}

	// Row positions per branch, keeping the year label of each row.
	type branchRows struct {
		years         []string
		dropout, perf []float64
	}
	groups := map[string]*branchRows{}
	for i := 0; i < t.Len(); i++ {
		b := t.Value(i, dataset.ColBranch)
		if b.IsNull() {
			continue
		}
		g := groups[b.Text]
		if g == nil {
			g = &branchRows{}
			groups[b.Text] = g
		}
		y := t.Value(i, dataset.ColYear)
		label := ""
		if !y.IsNull() {
			label = y.Text
		}
		g.years = append(g.years, label)
		g.dropout = append(g.dropout, dropout[i])
		g.perf = append(g.perf, perf[i])
	}

	perfMeans := map[string]float64{}
	dropoutMeans := map[string]float64{}
	for name, g := range groups {
		d := summarize(g.dropout)
		p := summarize(g.perf)
		rep.Branches[name] = BranchStats{
			DropoutMean:      Float(d.Mean),
			DropoutStd:       Float(d.Std),
			DropoutMin:       Float(d.Min),
			DropoutMax:       Float(d.Max),
			PerformanceMean:  Float(p.Mean),
			PerformanceStd:   Float(p.Std),
			PerformanceMin:   Float(p.Min),
			PerformanceMax:   Float(p.Max),
			DropoutTrend:     trendOf(g.years, g.dropout),
			PerformanceTrend: trendOf(g.years, g.perf),
		}
		dropoutMeans[name] = d.Mean
		perfMeans[name] = p.Mean
	}

	higher := func(a, b float64) bool { return a > b }
	lower := func(a, b float64) bool { return a < b }
	rep.Rankings = Rankings{
		BestPerformance:  extreme(perfMeans, higher),
		WorstPerformance: extreme(perfMeans, lower),
		HighestDropout:   extreme(dropoutMeans, higher),
		LowestDropout:    extreme(dropoutMeans, lower),
	}
	return rep, nil
}

// extreme returns the branch whose mean beats every other under better.
// Branches are visited in name order and only a strict improvement replaces
// the current pick, so ties go to the lexicographically smallest name.
// Missing means are skipped.
func extreme(means map[string]float64, better func(a, b float64) bool) []string {
	names := make([]string, 0, len(means))
	for n := range means {
		names = append(names, n)
	}
	sort.Strings(names)
	pick := ""
	best := math.NaN()
	for _, n := range names {
		v := means[n]
		if math.IsNaN(v) {
			continue
		}
		if pick == "" || better(v, best) {
			pick, best = n, v
		}
	}
	if pick == "" {
		return []string{}
	}
	return []string{pick}
}
