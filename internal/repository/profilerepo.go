// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/model"
)

// ProfileRepository provides owner-scoped access to bookmark profiles.
// Every method that touches more than one row serializes on a per-owner
// critical section so the single-default invariant survives concurrent calls.
type ProfileRepository interface {
	// ListByOwner returns all profiles of an owner, earliest-created first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Profile, error)

	// Get returns a profile by id if it is owned by ownerID.
	Get(ctx context.Context, ownerID, profileID uuid.UUID) (*model.Profile, error)

	// GetDefault returns the owner's default profile, falling back to the
	// earliest-created one when no default flag is set.
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error)

	// EnsureDefault repairs the default invariant: inserts candidate as the
	// first profile when the owner has none, promotes the earliest-created
	// profile when none is default, and is a no-op (uuid.Nil) otherwise.
	EnsureDefault(ctx context.Context, ownerID uuid.UUID, candidate *model.Profile) (uuid.UUID, error)

	// Create inserts a profile; when p.IsDefault is set, clears the flag on
	// every other profile of the same owner first.
	Create(ctx context.Context, p *model.Profile) error

	// Update applies a partial rename/recolor.
	Update(ctx context.Context, ownerID, profileID uuid.UUID, upd model.UpdateProfile) error

	// SetDefault rewrites the default flag across the owner's whole profile
	// set so that exactly profileID carries it.
	SetDefault(ctx context.Context, ownerID, profileID uuid.UUID) error

	// Delete removes a profile and all bookmarks scoped to it.
	Delete(ctx context.Context, ownerID, profileID uuid.UUID) error
}
