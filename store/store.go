// Package store persists the selected method name so a later process can
// re-bind it at startup. Every implementation holds one logical row keyed
// "method".
package store

import (
	"context"
	"time"
)

// Key is the property name under which the method is stored.
const Key = "method"

// Store is the write-through target for method selection.
type Store interface {
	// Load returns the last saved name; ok=false when nothing was saved.
	Load(ctx context.Context) (name string, ok bool, err error)
	// Save replaces the stored name.
	Save(ctx context.Context, name string) error
	// Close releases resources (no-op ok).
	Close(context.Context) error
}

// Record is the value shape used by stores that go through a codec.
type Record struct {
	Method     string    `json:"method" msgpack:"method" cbor:"method"`
	SelectedAt time.Time `json:"selected_at" msgpack:"selected_at" cbor:"selected_at"`
}
