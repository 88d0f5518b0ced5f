// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Default profile attributes used when bootstrapping a user's first profile.
const (
	DefaultProfileName  = "Default"
	DefaultProfileColor = "#3B82F6"
)

// Profile is a named, colored grouping of bookmarks owned by one user.
// At most one profile per owner carries IsDefault=true.
type Profile struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // externally authenticated user
	Name      string
	Color     string // hex, e.g. "#3B82F6"
	IsDefault bool
	CreatedAt time.Time
}

// Bookmark is a saved URL with enrichment metadata, scoped to one profile.
// OwnerID duplicates the owning profile's owner so authorization checks
// never need a join; it is stamped at creation and never changes.
type Bookmark struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	ProfileID   uuid.UUID // FK -> profiles.id
	URL         string
	Title       string
	Description string
	Favicon     string
	AddedAt     time.Time
}

// NewProfile carries caller-supplied fields for profile creation.
type NewProfile struct {
	Name      string
	Color     string
	IsDefault bool
}

// UpdateProfile is a partial rename/recolor; nil means "leave alone".
type UpdateProfile struct {
	Name  *string
	Color *string
}

// NewBookmark carries caller-supplied fields for bookmark creation.
type NewBookmark struct {
	ProfileID   uuid.UUID
	URL         string
	Title       string
	Description string
	Favicon     string
}

// UpdateBookmark is a partial edit; nil means "leave alone",
// a pointer to "" clears the field.
type UpdateBookmark struct {
	Title       *string
	Description *string
}
