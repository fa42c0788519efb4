// AngelaMos | 2026
// slot.go

// Package storage provides the single durable key-value slot backing the
// document account store. A slot holds one opaque document; every save
// overwrites the whole document, and the last writer wins.
package storage

import (
	"context"
	"errors"
)

// ErrSlotEmpty reports that no document has ever been written to the slot.
// An empty document is not the same thing: a persisted empty collection
// loads normally and must not trigger re-seeding.
var ErrSlotEmpty = errors.New("slot is empty")

type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
}
