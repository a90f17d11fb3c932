// Package store provides durable key-value backends and the state store
// that persists a reducer-driven snapshot through them.
package store

import (
	"context"
)

// Backend is a durable key-value store. The state store keeps the
// authoritative copy in memory and only uses the backend to survive restarts.
type Backend interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close closes the backend.
	Close() error
}
