package cleaning

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
)

// ErrInvalidKind is returned for a dataset kind other than rendiment/abandono.
var ErrInvalidKind = errors.New("kind must be 'rendiment' or 'abandono'")

// Kind tags which source schema a table follows.
type Kind string

const (
	KindPerformance Kind = "rendiment"
	KindDropout     Kind = "abandono"
)

// ParseKind validates a kind tag.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindPerformance, KindDropout:
		return k, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidKind, s)
}

// Metric returns the column averaged for this kind.
func (k Kind) Metric() (string, error) {
	switch k {
	case KindPerformance:
		return dataset.ColPerformance, nil
	case KindDropout:
		return dataset.ColDropout, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidKind, string(k))
}

// dropout-file column names that differ from the performance file.
var dropoutRenames = map[string]string{
	"Sexe Alumne":                        dataset.ColSex,
	"Naturalesa universitat responsable": dataset.ColUniversityType,
	"Universitat Responsable":            "Universitat",
	"Tipus de centre":                    dataset.ColIntegrated,
}

var (
	noiseColumns       = []string{"Universitat", "Unitat"}
	performanceCredits = []string{"Crèdits ordinaris superats", "Crèdits ordinaris matriculats"}
)

// RenameColumns maps a dropout table onto the canonical schema. Performance
// tables already use it and come back as an unchanged copy. Absent columns
// are skipped, so applying it twice is a no-op the second time.
func RenameColumns(t *dataset.Table, kind Kind) *dataset.Table {
	if kind != KindDropout {
		return t.Clone()
	}
	return t.Rename(dropoutRenames)
}

// DropColumns removes columns not used downstream. Absent columns are skipped.
func DropColumns(t *dataset.Table, kind Kind) *dataset.Table {
	cols := append([]string{}, noiseColumns...)
	if kind == KindPerformance {
		cols = append(cols, performanceCredits...)
	}
	return t.Drop(cols...)
}
