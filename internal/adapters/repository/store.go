// Package repository defines the match store contract and its backends.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fszuberski/scoreboard/internal/domain/model"
)

// Store provides identity-keyed access to ongoing matches. Implementations
// own their state; callers only ever receive Match values.
type Store interface {
	// Get returns the match stored under id. The boolean is false when no
	// such match exists; a miss is not an error.
	Get(ctx context.Context, id uuid.UUID) (model.Match, bool, error)

	// List returns every stored match in no particular order.
	List(ctx context.Context) ([]model.Match, error)

	// Save inserts a new match.
	// Returns ErrAlreadyExists if a match with the same id is present.
	Save(ctx context.Context, m model.Match) error

	// Update replaces the match stored under id wholesale.
	// Returns ErrNotFound if nothing is stored under id.
	Update(ctx context.Context, id uuid.UUID, m model.Match) error

	// Remove deletes the match stored under id. Removing an unknown id is a no-op.
	Remove(ctx context.Context, id uuid.UUID) error
}
