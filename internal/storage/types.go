// Package storage provides the durable key-value media the record store
// persists to. Values are opaque strings; callers own the encoding.
package storage

import "context"

// Backend is a string-valued key-value medium.
type Backend interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
