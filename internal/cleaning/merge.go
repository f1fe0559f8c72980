package cleaning

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
)

// Merge inner-joins two aggregated tables on the seven key columns. Only keys
// present on both sides survive; left row order is kept. Non-key columns that
// exist on both sides get _x/_y suffixes.
func Merge(left, right *dataset.Table) (*dataset.Table, error) {
	keys := dataset.KeyColumns()
	if err := left.Require(keys...); err != nil {
		return nil, fmt.Errorf("merge left: %w", err)
	}
	if err := right.Require(keys...); err != nil {
		return nil, fmt.Errorf("merge right: %w", err)
	}

	isKey := map[string]bool{}
	for _, k := range keys {
		isKey[k] = true
	}
	leftExtra := nonKey(left, isKey)
	rightExtra := nonKey(right, isKey)
	shared := map[string]bool{}
	for _, l := range leftExtra {
		for _, r := range rightExtra {
			if l == r {
				shared[l] = true
			}
		}
	}
	cols := append([]string{}, keys...)
	for _, c := range leftExtra {
		if shared[c] {
			c += "_x"
		}
		cols = append(cols, c)
	}
	for _, c := range rightExtra {
		if shared[c] {
			c += "_y"
		}
		cols = append(cols, c)
	}

	index := map[string][]int{}
	for i := 0; i < right.Len(); i++ {
		if id, ok := joinKey(right, i, keys); ok {
			index[id] = append(index[id], i)
		}
	}

	out := dataset.New("merged", cols)
	for i := 0; i < left.Len(); i++ {
		id, ok := joinKey(left, i, keys)
		if !ok {
			continue
		}
		for _, j := range index[id] {
			row := make([]dataset.Value, 0, len(cols))
			for _, k := range keys {
				row = append(row, left.Value(i, k))
			}
			for _, c := range leftExtra {
				row = append(row, left.Value(i, c))
			}
			for _, c := range rightExtra {
				row = append(row, right.Value(j, c))
			}
			out.AppendRow(row)
		}
	}
	return out, nil
}

func nonKey(t *dataset.Table, isKey map[string]bool) []string {
	var out []string
	for _, c := range t.Columns() {
		if !isKey[c] {
			out = append(out, c)
		}
	}
	return out
}

func joinKey(t *dataset.Table, i int, keys []string) (string, bool) {
	parts := make([]string, len(keys))
	for j, k := range keys {
		v := t.Value(i, k)
		if v.IsNull() {
			return "", false
		}
		parts[j] = v.Text
	}
	return strings.Join(parts, keySep), true
}
