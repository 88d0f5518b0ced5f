package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/errs"
	"github.com/akarneev/shelfmark/internal/model"
)

// BookmarkRepo implements BookmarkRepository using PostgreSQL.
type BookmarkRepo struct{ db *DB }

// NewBookmarkRepo constructs a bookmark repository.
func NewBookmarkRepo(db *DB) *BookmarkRepo { return &BookmarkRepo{db: db} }

// ListByProfile returns the profile's bookmarks, most recently added first.
// The owner_id predicate makes foreign profiles read as empty.
func (r *BookmarkRepo) ListByProfile(ctx context.Context, ownerID, profileID uuid.UUID) ([]model.Bookmark, error) {
	const q = `
SELECT id, owner_id, profile_id, url, title, description, favicon, added_at
FROM bookmarks
WHERE profile_id=$1 AND owner_id=$2
ORDER BY added_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, profileID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bookmark
	for rows.Next() {
		var b model.Bookmark
		if err = rows.Scan(&b.ID, &b.OwnerID, &b.ProfileID, &b.URL, &b.Title, &b.Description, &b.Favicon, &b.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create inserts a bookmark row.
func (r *BookmarkRepo) Create(ctx context.Context, b *model.Bookmark) error {
	const q = `
INSERT INTO bookmarks (id, owner_id, profile_id, url, title, description, favicon, added_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.Pool.Exec(ctx, q,
		b.ID, b.OwnerID, b.ProfileID, b.URL, b.Title, b.Description, b.Favicon, b.AddedAt)
	return err
}

// Update applies a partial title/description edit. NULL arguments keep the
// current value; an explicit empty string overwrites.
func (r *BookmarkRepo) Update(ctx context.Context, ownerID, bookmarkID uuid.UUID, upd model.UpdateBookmark) error {
	const q = `
UPDATE bookmarks SET title=COALESCE($3, title), description=COALESCE($4, description)
WHERE id=$1 AND owner_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, bookmarkID, ownerID, upd.Title, upd.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a single bookmark.
func (r *BookmarkRepo) Delete(ctx context.Context, ownerID, bookmarkID uuid.UUID) error {
	const q = `DELETE FROM bookmarks WHERE id=$1 AND owner_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, bookmarkID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
