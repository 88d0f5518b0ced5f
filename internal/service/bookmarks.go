package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/errs"
	"github.com/akarneev/shelfmark/internal/metadata"
	"github.com/akarneev/shelfmark/internal/model"
	"github.com/akarneev/shelfmark/internal/repository"
)

// MetadataFetcher is the enrichment dependency of the bookmark service.
// Implementations never fail: extraction falls back to defaults.
type MetadataFetcher interface {
	Fetch(ctx context.Context, rawURL string) metadata.Meta
}

// BookmarkService defines operations over a user's saved bookmarks.
type BookmarkService interface {
	// List returns the profile's bookmarks newest-first; a missing or
	// foreign profile reads as an empty list.
	List(ctx context.Context, ownerID, profileID uuid.UUID) ([]model.Bookmark, error)
	// Create stores a bookmark with caller-supplied fields.
	Create(ctx context.Context, ownerID uuid.UUID, nb model.NewBookmark) (uuid.UUID, error)
	// AddWithMetadata enriches the URL via the metadata fetcher, then stores it.
	AddWithMetadata(ctx context.Context, ownerID, profileID uuid.UUID, rawURL string) (uuid.UUID, error)
	// Update applies a partial title/description edit.
	Update(ctx context.Context, ownerID, bookmarkID uuid.UUID, upd model.UpdateBookmark) error
	// Remove deletes a single bookmark.
	Remove(ctx context.Context, ownerID, bookmarkID uuid.UUID) error
}

type BookmarkServiceImpl struct {
	repo     repository.BookmarkRepository
	profiles repository.ProfileRepository
	fetcher  MetadataFetcher
}

// NewBookmarkService constructs BookmarkService.
func NewBookmarkService(
	repo repository.BookmarkRepository,
	profiles repository.ProfileRepository,
	fetcher MetadataFetcher,
) *BookmarkServiceImpl {
	return &BookmarkServiceImpl{repo: repo, profiles: profiles, fetcher: fetcher}
}

// List verifies profile ownership first; an unowned profile degrades to an
// empty result instead of an error, matching the read posture of queries.
func (s *BookmarkServiceImpl) List(ctx context.Context, ownerID, profileID uuid.UUID) ([]model.Bookmark, error) {
	if ownerID == uuid.Nil || profileID == uuid.Nil {
		return []model.Bookmark{}, nil
	}
	if _, err := s.profiles.Get(ctx, ownerID, profileID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return []model.Bookmark{}, nil
		}
		return nil, err
	}
	return s.repo.ListByProfile(ctx, ownerID, profileID)
}

// Create verifies the target profile belongs to the owner, then inserts the
// bookmark stamped with the current time. OwnerID is denormalized onto the
// row so later authorization checks skip the profile join.
func (s *BookmarkServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, nb model.NewBookmark) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	if nb.ProfileID == uuid.Nil {
		return uuid.Nil, errs.ErrNotFound
	}
	if nb.URL == "" {
		return uuid.Nil, fmt.Errorf("%w: empty url", errs.ErrValidation)
	}
	if nb.Title == "" {
		nb.Title = nb.URL
	}
	if _, err := s.profiles.Get(ctx, ownerID, nb.ProfileID); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	b := &model.Bookmark{
		ID:          id,
		OwnerID:     ownerID,
		ProfileID:   nb.ProfileID,
		URL:         nb.URL,
		Title:       nb.Title,
		Description: nb.Description,
		Favicon:     nb.Favicon,
		AddedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// AddWithMetadata runs the enrichment pipeline and hands the result to Create.
// Enrichment failure is absorbed inside the fetcher; storage and authorization
// errors propagate unchanged.
func (s *BookmarkServiceImpl) AddWithMetadata(ctx context.Context, ownerID, profileID uuid.UUID, rawURL string) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, errs.ErrUnauthenticated
	}
	if rawURL == "" {
		return uuid.Nil, fmt.Errorf("%w: empty url", errs.ErrValidation)
	}
	meta := s.fetcher.Fetch(ctx, rawURL)
	return s.Create(ctx, ownerID, model.NewBookmark{
		ProfileID:   profileID,
		URL:         meta.URL,
		Title:       meta.Title,
		Description: meta.Description,
		Favicon:     meta.Favicon,
	})
}

// Update edits only the supplied fields; absent fields stay untouched and an
// explicit empty string clears.
func (s *BookmarkServiceImpl) Update(ctx context.Context, ownerID, bookmarkID uuid.UUID, upd model.UpdateBookmark) error {
	if ownerID == uuid.Nil {
		return errs.ErrUnauthenticated
	}
	if bookmarkID == uuid.Nil {
		return errs.ErrNotFound
	}
	if upd.Title == nil && upd.Description == nil {
		return nil
	}
	return s.repo.Update(ctx, ownerID, bookmarkID, upd)
}

// Remove deletes a bookmark owned by the caller.
func (s *BookmarkServiceImpl) Remove(ctx context.Context, ownerID, bookmarkID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return errs.ErrUnauthenticated
	}
	if bookmarkID == uuid.Nil {
		return errs.ErrNotFound
	}
	return s.repo.Delete(ctx, ownerID, bookmarkID)
}
