package packing

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/packlist/internal/model"
)

func TestAddPrependsAndSyncs(t *testing.T) {
	ctx := context.Background()
	l, repo, _ := newTestList(t)

	l.Add(ctx, model.Item{ID: "3", Description: "Socks", Quantity: 4})

	assert.Equal(t, []string{"Socks", "Shirt", "Pants"}, descriptions(l.Items()))
	assert.Equal(t, l.Items(), repo.Load(ctx))
	assert.NoError(t, l.SyncErr())
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	l, repo, _ := newTestList(t)

	l.Toggle(ctx, "1")
	it, ok := l.Find("1")
	require.True(t, ok)
	assert.True(t, it.Packed)

	l.Toggle(ctx, "1")
	it, _ = l.Find("1")
	assert.False(t, it.Packed)

	l.Toggle(ctx, "missing")
	assert.Equal(t, model.SeedItems(), l.Items())
	assert.Equal(t, model.SeedItems(), repo.Load(ctx))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newTestList(t)

	l.Delete(ctx, "missing")
	assert.Equal(t, 2, l.Len())

	l.Delete(ctx, "1")
	assert.Equal(t, []string{"Pants"}, descriptions(l.Items()))
	_, ok := l.Find("1")
	assert.False(t, ok)
}

func TestClearAllPersistsEmpty(t *testing.T) {
	ctx := context.Background()
	l, repo, kv := newTestList(t)

	l.ClearAll(ctx)

	assert.Empty(t, l.Items())
	raw, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
	assert.Empty(t, repo.Load(ctx), "a cleared list stays empty")
}

func TestClearPacked(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newTestList(t)
	l.Add(ctx, model.Item{ID: "3", Description: "Hat", Quantity: 1, Packed: true})
	l.Toggle(ctx, "2")

	l.ClearPacked(ctx)

	assert.Equal(t, []string{"Shirt"}, descriptions(l.Items()))
}

func TestOperationsNeverWriteIntoHandedOutSlices(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newTestList(t)
	before := l.Items()
	snapshot := append([]model.Item(nil), before...)

	l.Toggle(ctx, "1")
	l.Delete(ctx, "2")
	l.Add(ctx, model.Item{ID: "9", Description: "Cap", Quantity: 1})
	l.ClearPacked(ctx)

	assert.Equal(t, snapshot, before)
	assert.NotSame(t, &before[0], &l.Items()[0])
}

func TestNewListCopiesInput(t *testing.T) {
	in := model.SeedItems()
	l := NewList(in, nil, zerolog.Nop())
	in[0].Description = "changed"
	assert.Equal(t, "Shirt", l.Items()[0].Description)
}

func TestSyncFailureStillAdvancesState(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	l := NewList(model.SeedItems(), failingSaver{err: boom}, zerolog.Nop())

	l.Delete(ctx, "1")

	assert.ErrorIs(t, l.SyncErr(), boom)
	assert.Equal(t, 1, l.Len())
}

func TestIDsStayUniqueUnderRandomOperations(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	gen := &model.SequentialGenerator{}

	for run := 0; run < 50; run++ {
		l, _, _ := newTestList(t)
		gen.Observe(l.Items())

		for step := 0; step < 200; step++ {
			pick := func() model.ID {
				if l.Len() == 0 || rng.Intn(5) == 0 {
					return "absent"
				}
				return l.Items()[rng.Intn(l.Len())].ID
			}
			switch rng.Intn(6) {
			case 0, 1:
				l.Add(ctx, model.Item{ID: gen.Generate(), Description: "thing", Quantity: 1})
			case 2:
				l.Toggle(ctx, pick())
			case 3:
				l.Delete(ctx, pick())
			case 4:
				if rng.Intn(10) == 0 {
					l.ClearAll(ctx)
				}
			case 5:
				l.ClearPacked(ctx)
			}

			seen := make(map[model.ID]bool, l.Len())
			for _, it := range l.Items() {
				require.False(t, seen[it.ID], "duplicate id %s at run %d step %d", it.ID, run, step)
				seen[it.ID] = true
			}
		}
	}
}
