package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/KaramelBytes/edutrend-cli/internal/utils"
)

// Float is a float64 that serializes NaN and ±Inf as null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Report is the four-section statistical summary of a merged table.
type Report struct {
	Metadata Metadata               `json:"metadata"`
	Global   GlobalStats            `json:"estadisticas_globales"`
	Branches map[string]BranchStats `json:"analisis_por_rama"`
	Rankings Rankings               `json:"ranking_ramas"`
}

// Metadata describes the analysed table.
type Metadata struct {
	Date    string   `json:"fecha_analisis"`
	Records int      `json:"num_registros"`
	Years   []string `json:"periodo_temporal"`
}

// GlobalStats are computed over every row.
type GlobalStats struct {
	DropoutMean     Float `json:"abandono_medio"`
	PerformanceMean Float `json:"rendimiento_medio"`
	Correlation     Float `json:"correlacion_abandono_rendimiento"`
}

// BranchStats are computed over the rows of one branch.
type BranchStats struct {
	DropoutMean      Float `json:"abandono_medio"`
	DropoutStd       Float `json:"abandono_std"`
	DropoutMin       Float `json:"abandono_min"`
	DropoutMax       Float `json:"abandono_max"`
	PerformanceMean  Float `json:"rendimiento_medio"`
	PerformanceStd   Float `json:"rendimiento_std"`
	PerformanceMin   Float `json:"rendimiento_min"`
	PerformanceMax   Float `json:"rendimiento_max"`
	DropoutTrend     Trend `json:"tendencia_abandono"`
	PerformanceTrend Trend `json:"tendencia_rendimiento"`
}

// Rankings name the extreme branches. Each list holds at most one branch.
type Rankings struct {
	BestPerformance  []string `json:"mejor_rendimiento"`
	WorstPerformance []string `json:"peor_rendimiento"`
	HighestDropout   []string `json:"mayor_abandono"`
	LowestDropout    []string `json:"menor_abandono"`
}

// Encode writes the report as indented UTF-8 JSON.
func (r *Report) Encode(w io.Writer) error {
	return utils.WriteJSON(w, r)
}

// Write stores the report as dir/name, creating dir if needed, and returns
// the written path.
func (r *Report) Write(dir, name string) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
