package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/packlist/internal/model"
)

func mixedItems() []model.Item {
	return []model.Item{
		{ID: "a", Description: "Passport", Quantity: 1, Packed: true},
		{ID: "b", Description: "Charger", Quantity: 1},
		{ID: "c", Description: "Toothbrush", Quantity: 1, Packed: true},
		{ID: "d", Description: "Shirt", Quantity: 5},
		{ID: "e", Description: "Sunscreen", Quantity: 1, Packed: true},
		{ID: "f", Description: "Pants", Quantity: 2},
	}
}

func ids(items []model.Item) []model.ID {
	out := make([]model.ID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestVisibleItemsFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []model.ID
	}{
		{"empty filter keeps all", "", []model.ID{"a", "b", "c", "d", "e", "f"}},
		{"lowercase substring", "sh", []model.ID{"c", "d"}},
		{"uppercase needle", "SH", []model.ID{"c", "d"}},
		{"mixed case middle", "aRgE", []model.ID{"b"}},
		{"no match", "umbrella", []model.ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleItems(mixedItems(), tt.filter, SortNone)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestVisibleItemsFoldsUnicode(t *testing.T) {
	items := []model.Item{{ID: "x", Description: "STRAßENKARTE", Quantity: 1}}
	assert.Len(t, VisibleItems(items, "straßen", SortNone), 1)
	assert.Len(t, VisibleItems(items, "Ünknown", SortNone), 0)
}

func TestVisibleItemsSort(t *testing.T) {
	tests := []struct {
		name string
		mode SortMode
		want []model.ID
	}{
		{"none keeps insertion order", SortNone, []model.ID{"a", "b", "c", "d", "e", "f"}},
		{"packed first is stable", SortPackedFirst, []model.ID{"a", "c", "e", "b", "d", "f"}},
		{"unpacked first is stable", SortUnpackedFirst, []model.ID{"b", "d", "f", "a", "c", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(VisibleItems(mixedItems(), "", tt.mode)))
		})
	}
}

func TestSortModesPartitionIdentically(t *testing.T) {
	items := mixedItems()
	packedFirst := VisibleItems(items, "s", SortPackedFirst)
	unpackedFirst := VisibleItems(items, "s", SortUnpackedFirst)
	require.Len(t, unpackedFirst, len(packedFirst))

	split := func(xs []model.Item) (packed, unpacked []model.ID) {
		for _, it := range xs {
			if it.Packed {
				packed = append(packed, it.ID)
			} else {
				unpacked = append(unpacked, it.ID)
			}
		}
		return
	}
	p1, u1 := split(packedFirst)
	p2, u2 := split(unpackedFirst)
	assert.Equal(t, p1, p2)
	assert.Equal(t, u1, u2)

	// reversed group order
	assert.Equal(t, append(append([]model.ID{}, p1...), u1...), ids(packedFirst))
	assert.Equal(t, append(append([]model.ID{}, u2...), p2...), ids(unpackedFirst))
}

func TestVisibleItemsLeavesInputAlone(t *testing.T) {
	items := mixedItems()
	_ = VisibleItems(items, "", SortPackedFirst)
	assert.Equal(t, mixedItems(), items)
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SortMode
		wantErr bool
	}{
		{"", SortNone, false},
		{"none", SortNone, false},
		{"packed-first", SortPackedFirst, false},
		{" Unpacked-First ", SortUnpackedFirst, false},
		{"alphabetical", SortNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) SortMode {
	t.Helper()
	m, err := ParseSortMode(s)
	require.NoError(t, err)
	return m
}

func TestSortModeNextCycles(t *testing.T) {
	m := SortNone
	seen := []SortMode{m}
	for i := 0; i < 3; i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	assert.Equal(t, []SortMode{SortNone, SortUnpackedFirst, SortPackedFirst, SortNone}, seen)
	assert.Equal(t, "SortMode(9)", SortMode(9).String())
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name  string
		items []model.Item
		want  Stats
	}{
		{"empty", nil, Stats{}},
		{"none packed", model.SeedItems(), Stats{Total: 2}},
		{"half", []model.Item{{Packed: true}, {}}, Stats{Total: 2, Packed: 1, Percent: 50}},
		{"one of three rounds down", []model.Item{{Packed: true}, {}, {}}, Stats{Total: 3, Packed: 1, Percent: 33}},
		{"two of three rounds up", []model.Item{{Packed: true}, {Packed: true}, {}}, Stats{Total: 3, Packed: 2, Percent: 67}},
		{"all", []model.Item{{Packed: true}}, Stats{Total: 1, Packed: 1, Percent: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStats(tt.items))
		})
	}
}

func TestComputeStatsPercentInRange(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for packed := 0; packed <= total; packed++ {
			items := make([]model.Item, total)
			for i := 0; i < packed; i++ {
				items[i].Packed = true
			}
			s := ComputeStats(items)
			require.GreaterOrEqual(t, s.Percent, 0)
			require.LessOrEqual(t, s.Percent, 100)
		}
	}
}
