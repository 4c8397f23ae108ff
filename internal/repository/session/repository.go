package session

import "context"

// Store is the persistent key-value mapping backing per-session state
// (serialized cart under one key, auth token under another). Values are
// written whole; there are no partial updates.
type Store interface {
	// Get returns the stored value, or domain.ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report connectivity, used by
// the readiness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}
