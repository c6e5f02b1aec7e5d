// Package store is the local "key -> JSON document" persistence used when the
// backend is unreachable, and for calculation history and autofill snapshots.
package store

import (
	"context"
	"encoding/json"
)

// Store persists JSON documents and bounded append-only lists of JSON documents.
// Implementations are safe for concurrent use.
type Store interface {
	// Get decodes the document at key into dst. It reports false if the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Put(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error

	// Append adds v to the list at key and trims the oldest entries beyond limit.
	// A limit <= 0 keeps everything.
	Append(ctx context.Context, key string, v any, limit int) error
	// List returns the raw entries oldest first.
	List(ctx context.Context, key string) ([]json.RawMessage, error)
	// Remove deletes one entry byte-equal to item.
	Remove(ctx context.Context, key string, item json.RawMessage) error

	Ping(ctx context.Context) error
	Close() error
}
