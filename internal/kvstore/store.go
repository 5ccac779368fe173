// Package kvstore is the durable key-value boundary every repository persists through.
//
// Failures never cross this boundary as errors: backends log them and report a
// boolean (Set, Remove) or leave the caller's default in place (Get).
package kvstore

import (
	"context"

	"kanbanify/internal/metrics"
)

type Store interface {
	// Get decodes the value stored at key into dest. It returns false, leaving
	// dest untouched, when the key is missing or the value cannot be decoded.
	Get(ctx context.Context, key string, dest any) bool
	// Set encodes value as JSON and stores it at key.
	Set(ctx context.Context, key string, value any) bool
	// Remove deletes key. Removing a missing key succeeds.
	Remove(ctx context.Context, key string) bool
}

// GetOr returns the value at key, or def when it is missing or unreadable.
func GetOr[T any](ctx context.Context, s Store, key string, def T) T {
	var v T
	if !s.Get(ctx, key, &v) {
		return def
	}
	return v
}

func record(backend, op string, ok bool) {
	metrics.KVOperations.WithLabelValues(backend, op, metrics.Result(ok)).Inc()
}
