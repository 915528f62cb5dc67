// Package storage provides the durable key-value stores the gamification
// engine persists its state in.
package storage

import "context"

// Store is a durable string key-value store.
//
// Get reports ok=false when the key is absent. Remove of an absent key is not
// an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
