// Package identity resolves player ids to human-readable display names.
package identity

import (
	"context"
	"fmt"

	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

// Resolver maps a player id to a display name. Implementations must
// always return a usable name; lookup failure falls back to a
// placeholder rather than an error.
type Resolver interface {
	Resolve(ctx context.Context, id model.PlayerID) string
}

// FallbackName is the placeholder used when no name is known
func FallbackName(id model.PlayerID) string {
	return fmt.Sprintf("Player %s", id)
}

// Static resolves names from a fixed map, with the standard fallback.
// Used in tests and in the CLI client.
type Static map[model.PlayerID]string

var _ Resolver = (Static)(nil)

func (s Static) Resolve(_ context.Context, id model.PlayerID) string {
	if name, ok := s[id]; ok {
		return name
	}
	return FallbackName(id)
}

// StoreResolver resolves names recorded alongside past results
type StoreResolver struct {
	store storage.Store
}

var _ Resolver = (*StoreResolver)(nil)

func NewStoreResolver(store storage.Store) *StoreResolver {
	return &StoreResolver{store: store}
}

func (r *StoreResolver) Resolve(ctx context.Context, id model.PlayerID) string {
	if r.store == nil {
		return FallbackName(id)
	}
	name, err := r.store.DisplayName(ctx, id)
	if err != nil {
		return FallbackName(id)
	}
	return name
}
