// Package service contains application services for profiles and bookmarks.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/errs"
	"github.com/akarneev/shelfmark/internal/model"
	"github.com/akarneev/shelfmark/internal/repository"
)

// ProfileService defines operations over a user's bookmark profiles.
type ProfileService interface {
	// List returns all profiles of the owner.
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Profile, error)
	// GetDefault returns the owner's default profile, or nil with no error
	// when the owner has zero profiles.
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error)
	// EnsureDefault repairs the single-default invariant; returns the id of
	// the created or promoted profile, or uuid.Nil when nothing was done.
	EnsureDefault(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error)
	// Create inserts a new profile and returns its id.
	Create(ctx context.Context, ownerID uuid.UUID, np model.NewProfile) (uuid.UUID, error)
	// Update applies a partial rename/recolor.
	Update(ctx context.Context, ownerID, profileID uuid.UUID, upd model.UpdateProfile) error
	// SetDefault makes exactly profileID the owner's default.
	SetDefault(ctx context.Context, ownerID, profileID uuid.UUID) error
	// Remove deletes a profile together with all of its bookmarks.
	Remove(ctx context.Context, ownerID, profileID uuid.UUID) error
}

type ProfileServiceImpl struct {
	repo repository.ProfileRepository
}

// NewProfileService constructs ProfileService.
func NewProfileService(repo repository.ProfileRepository) *ProfileServiceImpl {
	return &ProfileServiceImpl{repo: repo}
}

// List returns all profiles for the owner.
func (s *ProfileServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]model.Profile, error) {
	if ownerID == uuid.Nil {
		return nil, errs.ErrUnauthenticated
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetDefault returns the default profile, falling back to the earliest-created
// one when no flag is set; nil when the owner has no profiles at all.
func (s *ProfileServiceImpl) GetDefault(ctx context.Context, ownerID uuid.UUID) (*model.Profile, error) {
	if ownerID == uuid.Nil {
		return nil, errs.ErrUnauthenticated
	}
	p, err := s.repo.GetDefault(ctx, ownerID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// EnsureDefault is idempotent: safe to call on every session start without
// producing duplicate defaults or duplicate profiles.
func (s *ProfileServiceImpl) EnsureDefault(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	candidate := &model.Profile{
		ID:        id,
		OwnerID:   ownerID,
		Name:      model.DefaultProfileName,
		Color:     model.DefaultProfileColor,
		IsDefault: true,
	}
	return s.repo.EnsureDefault(ctx, ownerID, candidate)
}

// Create inserts a new profile; a default-flagged one displaces any previous default.
func (s *ProfileServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, np model.NewProfile) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	if np.Name == "" {
		return uuid.Nil, fmt.Errorf("%w: empty name", errs.ErrValidation)
	}
	if np.Color == "" {
		return uuid.Nil, fmt.Errorf("%w: empty color", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	p := &model.Profile{
		ID:        id,
		OwnerID:   ownerID,
		Name:      np.Name,
		Color:     np.Color,
		IsDefault: np.IsDefault,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update applies a rename/recolor; untouched fields stay as they are.
func (s *ProfileServiceImpl) Update(ctx context.Context, ownerID, profileID uuid.UUID, upd model.UpdateProfile) error {
	if ownerID == uuid.Nil {
		return errs.ErrUnauthenticated
	}
	if profileID == uuid.Nil {
		return errs.ErrNotFound
	}
	if upd.Name == nil && upd.Color == nil {
		return nil
	}
	if upd.Name != nil && *upd.Name == "" {
		return fmt.Errorf("%w: empty name", errs.ErrValidation)
	}
	if upd.Color != nil && *upd.Color == "" {
		return fmt.Errorf("%w: empty color", errs.ErrValidation)
	}
	return s.repo.Update(ctx, ownerID, profileID, upd)
}

// SetDefault makes profileID the sole default for the owner.
func (s *ProfileServiceImpl) SetDefault(ctx context.Context, ownerID, profileID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return errs.ErrUnauthenticated
	}
	if profileID == uuid.Nil {
		return errs.ErrNotFound
	}
	return s.repo.SetDefault(ctx, ownerID, profileID)
}

// Remove deletes the profile and cascades over its bookmarks.
func (s *ProfileServiceImpl) Remove(ctx context.Context, ownerID, profileID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return errs.ErrUnauthenticated
	}
	if profileID == uuid.Nil {
		return errs.ErrNotFound
	}
	return s.repo.Delete(ctx, ownerID, profileID)
}
