// Package store holds the string key-value backends the packing list is
// persisted into. Values are opaque blobs; callers own the encoding.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// KV is a string-keyed store of string values.
type KV interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
	Close() error
}
