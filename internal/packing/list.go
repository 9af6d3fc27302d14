// Package packing holds the packing-list state machine, its persistence
// adapter and the views derived from it.
package packing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/packlist/internal/model"
)

// Saver persists the full collection after every change.
type Saver interface {
	Save(ctx context.Context, items []model.Item) error
}

// List owns the authoritative item sequence. Every operation installs a new
// slice and never writes into a slice it has handed out, so callers can
// detect changes by comparing the Items() result they hold.
type List struct {
	items   []model.Item
	saver   Saver
	logger  zerolog.Logger
	syncErr error
}

// NewList starts from items, which are copied.
func NewList(items []model.Item, saver Saver, logger zerolog.Logger) *List {
	own := make([]model.Item, len(items))
	copy(own, items)
	return &List{items: own, saver: saver, logger: logger}
}

// Open loads the collection from repo and binds it as the saver.
func Open(ctx context.Context, repo *Repository, logger zerolog.Logger) *List {
	return NewList(repo.Load(ctx), repo, logger)
}

// Items returns the current sequence. The slice is never modified by List.
func (l *List) Items() []model.Item { return l.items }

// Len is the number of items.
func (l *List) Len() int { return len(l.items) }

// Find returns the item with id.
func (l *List) Find(id model.ID) (model.Item, bool) {
	for _, it := range l.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// SyncErr is the error from the most recent save, or nil.
func (l *List) SyncErr() error { return l.syncErr }

// Add prepends item. Id uniqueness is the caller's job.
func (l *List) Add(ctx context.Context, item model.Item) {
	next := make([]model.Item, 0, len(l.items)+1)
	next = append(next, item)
	next = append(next, l.items...)
	l.commit(ctx, "add", next)
}

// Toggle flips Packed on the item with id. Unknown ids are ignored.
func (l *List) Toggle(ctx context.Context, id model.ID) {
	next := make([]model.Item, len(l.items))
	for i, it := range l.items {
		if it.ID == id {
			it.Packed = !it.Packed
		}
		next[i] = it
	}
	l.commit(ctx, "toggle", next)
}

// Delete removes the item with id. Unknown ids are ignored.
func (l *List) Delete(ctx context.Context, id model.ID) {
	l.commit(ctx, "delete", l.keep(func(it model.Item) bool { return it.ID != id }))
}

// ClearAll empties the list.
func (l *List) ClearAll(ctx context.Context) {
	l.commit(ctx, "clear-all", []model.Item{})
}

// ClearPacked removes every packed item.
func (l *List) ClearPacked(ctx context.Context) {
	l.commit(ctx, "clear-packed", l.keep(func(it model.Item) bool { return !it.Packed }))
}

func (l *List) keep(pred func(model.Item) bool) []model.Item {
	next := make([]model.Item, 0, len(l.items))
	for _, it := range l.items {
		if pred(it) {
			next = append(next, it)
		}
	}
	return next
}

// commit installs next and syncs it. A failed sync is logged and kept for
// SyncErr; the in-memory state still advances.
func (l *List) commit(ctx context.Context, op string, next []model.Item) {
	l.items = next
	l.logger.Debug().Str("op", op).Int("items", len(next)).Msg("list changed")
	if l.saver == nil {
		l.syncErr = nil
		return
	}
	l.syncErr = l.saver.Save(ctx, next)
	if l.syncErr != nil {
		l.logger.Warn().Err(l.syncErr).Str("op", op).Msg("sync failed")
	}
}
