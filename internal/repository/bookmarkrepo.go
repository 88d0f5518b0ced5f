package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/model"
)

// BookmarkRepository provides owner-scoped access to saved bookmarks.
type BookmarkRepository interface {
	// ListByProfile returns the bookmarks of one profile, newest first.
	ListByProfile(ctx context.Context, ownerID, profileID uuid.UUID) ([]model.Bookmark, error)

	// Create inserts a bookmark.
	Create(ctx context.Context, b *model.Bookmark) error

	// Update applies a partial title/description edit.
	Update(ctx context.Context, ownerID, bookmarkID uuid.UUID, upd model.UpdateBookmark) error

	// Delete removes a single bookmark.
	Delete(ctx context.Context, ownerID, bookmarkID uuid.UUID) error
}
