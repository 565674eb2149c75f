// Package kvstore provides the small pluggable key-value stores the
// marketplace service persists its user state into. Values are JSON
// strings; the service treats every backend as best-effort.
package kvstore

import "context"

type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
