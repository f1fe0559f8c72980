package cleaning

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
)

// keySep joins key parts; it cannot appear in spreadsheet text.
const keySep = "\x1f"

type groupAcc struct {
	keys  []dataset.Value
	sum   float64
	count int
}

// GroupByBranch collapses rows sharing the seven key columns into one row
// carrying the mean of the kind's metric. Missing metric values are skipped;
// a group with none is missing. Rows with a missing key are left out. The
// result is sorted by key tuple.
func GroupByBranch(t *dataset.Table, kind Kind) (*dataset.Table, error) {
	metric, err := kind.Metric()
	if err != nil {
		return nil, err
	}
	keys := dataset.KeyColumns()
	if err := t.Require(append(keys, metric)...); err != nil {
		return nil, fmt.Errorf("group %s: %w", kind, err)
	}

	groups := map[string]*groupAcc{}
	var order []string
	for i := 0; i < t.Len(); i++ {
		kv := make([]dataset.Value, len(keys))
		parts := make([]string, len(keys))
		complete := true
		for j, k := range keys {
			v := t.Value(i, k)
			if v.IsNull() {
				complete = false
				break
			}
			kv[j] = v
			parts[j] = v.Text
		}
		if !complete {
			continue
		}
		id := strings.Join(parts, keySep)
		g := groups[id]
		if g == nil {
			g = &groupAcc{keys: kv}
			groups[id] = g
			order = append(order, id)
		}
		if x, ok := t.Value(i, metric).Float(); ok {
			g.sum += x
			g.count++
		}
	}

	sort.Slice(order, func(a, b int) bool {
		ka, kb := groups[order[a]].keys, groups[order[b]].keys
		for j := range ka {
			if ka[j].Text != kb[j].Text {
				return ka[j].Text < kb[j].Text
			}
		}
		return false
	})

	out := dataset.New(t.Name, append(keys, metric))
	for _, id := range order {
		g := groups[id]
		mean := math.NaN()
		if g.count > 0 {
			mean = g.sum / float64(g.count)
		}
		out.AppendRow(append(append([]dataset.Value{}, g.keys...), dataset.NumberValue(mean)))
	}
	return out, nil
}
