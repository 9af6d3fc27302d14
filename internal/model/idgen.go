package model

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate item IDs.
type IDGenerator interface {
	// Generate an ID
	Generate() ID
}

// XIDGenerator generates globally unique, time-ordered ids.
type XIDGenerator struct{}

func (XIDGenerator) Generate() ID {
	return ID(xid.New().String())
}

// SequentialGenerator generates decimal ids counting up from 1. Call Observe
// with the loaded collection so the counter starts past existing numeric ids.
type SequentialGenerator struct {
	nextID uint64
}

func (g *SequentialGenerator) Generate() ID {
	n := atomic.AddUint64(&g.nextID, 1)
	return ID(strconv.FormatUint(n, 10))
}

// Observe advances the counter beyond every numeric id in items.
func (g *SequentialGenerator) Observe(items []Item) {
	for _, it := range items {
		n, err := strconv.ParseUint(string(it.ID), 10, 64)
		if err != nil {
			continue
		}
		for {
			cur := atomic.LoadUint64(&g.nextID)
			if n <= cur || atomic.CompareAndSwapUint64(&g.nextID, cur, n) {
				break
			}
		}
	}
}

// NewIDGenerator returns the generator for a configured strategy name.
// Unknown names fall back to xid.
func NewIDGenerator(strategy string) IDGenerator {
	if strategy == "sequential" {
		return &SequentialGenerator{}
	}
	return XIDGenerator{}
}
