package packing

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/packlist/internal/model"
	"github.com/idilsaglam/packlist/internal/store"
)

// newTestList opens a list over a fresh in-memory store.
func newTestList(t *testing.T) (*List, *Repository, *store.Memory) {
	t.Helper()
	kv := store.NewMemory(nil)
	repo := NewRepository(kv, "", zerolog.Nop())
	return Open(context.Background(), repo, zerolog.Nop()), repo, kv
}

func descriptions(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Description
	}
	return out
}

func findByDescription(t *testing.T, items []model.Item, desc string) model.Item {
	t.Helper()
	for _, it := range items {
		if it.Description == desc {
			return it
		}
	}
	require.Failf(t, "item not found", "no item described %q", desc)
	return model.Item{}
}

type failingSaver struct{ err error }

func (f failingSaver) Save(context.Context, []model.Item) error { return f.err }
