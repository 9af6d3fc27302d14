package packing

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/idilsaglam/packlist/internal/model"
)

// SortMode orders the visible items by packed status.
type SortMode int

const (
	SortNone SortMode = iota
	SortPackedFirst
	SortUnpackedFirst
)

var sortModeNames = []string{"none", "packed-first", "unpacked-first"}

func (m SortMode) String() string {
	if m < 0 || int(m) >= len(sortModeNames) {
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
	return sortModeNames[m]
}

// Next cycles none -> unpacked-first -> packed-first -> none.
func (m SortMode) Next() SortMode {
	switch m {
	case SortNone:
		return SortUnpackedFirst
	case SortUnpackedFirst:
		return SortPackedFirst
	}
	return SortNone
}

// ParseSortMode accepts the names printed by String. Empty means none.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortNone, nil
	}
	for i, name := range sortModeNames {
		if s == name {
			return SortMode(i), nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort mode %q (want one of %s)", s, strings.Join(sortModeNames, ", "))
}

// SortModeNames lists the accepted sort mode names.
func SortModeNames() []string { return slices.Clone(sortModeNames) }

// VisibleItems filters items by a case-insensitive substring of the
// description, then orders them by mode. The sort is stable and the input
// slice is left untouched.
func VisibleItems(items []model.Item, filterText string, mode SortMode) []model.Item {
	fold := cases.Fold()
	needle := fold.String(filterText)

	shown := make([]model.Item, 0, len(items))
	for _, it := range items {
		if needle == "" || strings.Contains(fold.String(it.Description), needle) {
			shown = append(shown, it)
		}
	}

	switch mode {
	case SortPackedFirst:
		slices.SortStableFunc(shown, func(a, b model.Item) int { return comparePacked(b, a) })
	case SortUnpackedFirst:
		slices.SortStableFunc(shown, comparePacked)
	}
	return shown
}

// comparePacked orders unpacked before packed.
func comparePacked(a, b model.Item) int {
	switch {
	case a.Packed == b.Packed:
		return 0
	case !a.Packed:
		return -1
	default:
		return 1
	}
}

// Stats summarises the whole collection.
type Stats struct {
	Total   int `json:"total" yaml:"total"`
	Packed  int `json:"packed" yaml:"packed"`
	Percent int `json:"percent" yaml:"percent"`
}

// ComputeStats counts items and the rounded packed percentage, which is 0
// for an empty collection.
func ComputeStats(items []model.Item) Stats {
	s := Stats{Total: len(items)}
	for _, it := range items {
		if it.Packed {
			s.Packed++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Packed) / float64(s.Total) * 100))
	}
	return s
}
