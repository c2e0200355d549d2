package kv

import "context"

// Store is the process-local key/value store backing all persisted
// report collections. Each key holds one JSON-encoded collection blob;
// callers read, modify and write the full blob.
type Store interface {
	// Get returns the blob stored under name, or nil when absent.
	Get(ctx context.Context, name string) ([]byte, error)
	// Set replaces the blob stored under name.
	Set(ctx context.Context, name string, blob []byte) error
	// Delete removes the blob stored under name; absent keys are a no-op.
	Delete(ctx context.Context, name string) error
}
