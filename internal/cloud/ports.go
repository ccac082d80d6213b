// Package cloud is the persistence service: it saves and loads whole farm
// snapshots keyed by user identity. Snapshots are opaque JSON documents;
// the last write wins.
package cloud

import (
	"context"
	"strings"

	"farmbook/internal/core"
)

// Store saves and loads farm snapshots. Push replaces any existing
// snapshot for the identity. Pull returns nil (and no error) when the
// identity has never pushed.
type Store interface {
	Push(ctx context.Context, identity string, data *core.FarmData) error
	Pull(ctx context.Context, identity string) (*core.FarmData, error)
}

// CleanupFunc releases a store's resources.
type CleanupFunc func() error

// NormalizeIdentity canonicalizes a user identity. "User@Farm.com " and
// "user@farm.com" address the same snapshot.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

type normalized struct {
	inner Store
}

// Normalized wraps a store so identities are canonicalized before they
// reach the backend.
func Normalized(inner Store) Store {
	return normalized{inner: inner}
}

func (n normalized) Push(ctx context.Context, identity string, data *core.FarmData) error {
	return n.inner.Push(ctx, NormalizeIdentity(identity), data)
}

func (n normalized) Pull(ctx context.Context, identity string) (*core.FarmData, error) {
	return n.inner.Pull(ctx, NormalizeIdentity(identity))
}
