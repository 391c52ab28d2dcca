// Package storage defines the persistence port: a string-keyed blob store
// holding serialized JSON. Backends live in internal/sqlite and
// internal/badgerkv; Memory serves tests and ephemeral hosts.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get and Remove for an absent key. Callers
// distinguish it from read failures so a new install is not mistaken for
// data loss.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence port.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
