package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies an item. Assigned once at creation and never changed.
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both strings and numbers. Older blobs used
// millisecond timestamps as numeric ids.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

// Item is one packing-list entry.
type Item struct {
	ID          ID     `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
	Packed      bool   `json:"packed" yaml:"packed"`
}

// SeedItems is the default collection used when nothing valid is stored.
// Each call returns a new slice.
func SeedItems() []Item {
	return []Item{
		{ID: "1", Description: "Shirt", Quantity: 5},
		{ID: "2", Description: "Pants", Quantity: 2},
	}
}
