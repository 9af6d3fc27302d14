package packing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/packlist/internal/model"
	"github.com/idilsaglam/packlist/internal/store"
)

// DefaultKey is the store key the collection is kept under.
const DefaultKey = "my-travel-list"

// writtenSuffix names the marker key set beside the blob on the first Save.
// It tells a list the user emptied apart from a store nobody has written.
const writtenSuffix = ".written"

// Repository reads and writes the whole collection as one JSON blob.
type Repository struct {
	kv     store.KV
	key    string
	logger zerolog.Logger

	saved bool
}

// NewRepository binds a store and key. An empty key means DefaultKey.
func NewRepository(kv store.KV, key string, logger zerolog.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{kv: kv, key: key, logger: logger}
}

// Key returns the store key in use.
func (r *Repository) Key() string { return r.key }

// Load returns the stored collection. An absent, unreadable or malformed
// blob yields the seed items. An empty blob yields the seed items too,
// unless this tool wrote it, in which case it is returned as is.
func (r *Repository) Load(ctx context.Context) []model.Item {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		r.logger.Debug().Err(err).Str("key", r.key).Msg("read failed, using seed items")
		return model.SeedItems()
	}
	if !ok {
		r.logger.Debug().Str("key", r.key).Msg("nothing stored, using seed items")
		return model.SeedItems()
	}
	items, err := decodeItems(raw)
	if err != nil {
		r.logger.Debug().Err(err).Str("key", r.key).Msg("malformed blob, using seed items")
		return model.SeedItems()
	}
	if len(items) == 0 && !r.written(ctx) {
		r.logger.Debug().Str("key", r.key).Msg("empty blob never written here, using seed items")
		return model.SeedItems()
	}
	if items == nil {
		items = []model.Item{}
	}
	return items
}

// Save writes the full collection, empty or not.
func (r *Repository) Save(ctx context.Context, items []model.Item) error {
	raw, err := encodeItems(items)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("save %q: %w", r.key, err)
	}
	if !r.saved {
		if err := r.kv.Set(ctx, r.key+writtenSuffix, "1"); err != nil {
			return fmt.Errorf("mark %q written: %w", r.key, err)
		}
		r.saved = true
	}
	r.logger.Debug().Str("key", r.key).Int("items", len(items)).Msg("saved")
	return nil
}

func (r *Repository) written(ctx context.Context) bool {
	if r.saved {
		return true
	}
	_, ok, err := r.kv.Get(ctx, r.key+writtenSuffix)
	if err != nil {
		r.logger.Debug().Err(err).Str("key", r.key).Msg("marker read failed")
		return false
	}
	return ok
}

func encodeItems(items []model.Item) (string, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

func decodeItems(raw string) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}
