package kv

import "context"

// Store is a small string-keyed value store for client-side state that must
// survive restarts: the session record and the active conversation id.
// Values are written and deleted wholesale; there is no partial update.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
