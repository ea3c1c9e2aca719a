// Package service defines the interfaces shared between the store and its persistence backends.
package service

import "context"

// KeyValueStore is the durable slot storage the entity store persists into.
// Values are opaque byte strings; the store writes each collection as one JSON array.
type KeyValueStore interface {
	// Get returns the value stored under key. The boolean is false when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}
