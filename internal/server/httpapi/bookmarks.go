package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/model"
)

type bookmarkDTO struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Favicon     string    `json:"favicon"`
	ProfileID   string    `json:"profileId"`
	AddedAt     time.Time `json:"addedAt"`
}

func toBookmarkDTO(b model.Bookmark) bookmarkDTO {
	return bookmarkDTO{
		ID:          b.ID.String(),
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Favicon:     b.Favicon,
		ProfileID:   b.ProfileID.String(),
		AddedAt:     b.AddedAt,
	}
}

type createBookmarkRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	ProfileID   string `json:"profileId"`
}

type addBookmarkRequest struct {
	URL       string `json:"url"`
	ProfileID string `json:"profileId"`
}

type updateBookmarkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// listBookmarks renders an empty list for identity-less requests and for
// profiles the caller does not own.
func (h *handlers) listBookmarks(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, []bookmarkDTO{})
		return
	}
	profileID, err := uuid.FromString(chi.URLParam(r, "profileID"))
	if err != nil {
		writeBadRequest(w, "bad profile id")
		return
	}
	bs, err := h.bookmarks.List(r.Context(), userID, profileID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	out := make([]bookmarkDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookmarkDTO(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) createBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	var req createBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad json")
		return
	}
	profileID, err := uuid.FromString(req.ProfileID)
	if err != nil {
		writeBadRequest(w, "bad profile id")
		return
	}
	id, err := h.bookmarks.Create(r.Context(), userID, model.NewBookmark{
		ProfileID:   profileID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Favicon:     req.Favicon,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

// addBookmarkWithMetadata runs the enrichment pipeline before storing.
func (h *handlers) addBookmarkWithMetadata(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	var req addBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad json")
		return
	}
	profileID, err := uuid.FromString(req.ProfileID)
	if err != nil {
		writeBadRequest(w, "bad profile id")
		return
	}
	id, err := h.bookmarks.AddWithMetadata(r.Context(), userID, profileID, req.URL)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

func (h *handlers) updateBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	bookmarkID, err := uuid.FromString(chi.URLParam(r, "bookmarkID"))
	if err != nil {
		writeBadRequest(w, "bad bookmark id")
		return
	}
	var req updateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad json")
		return
	}
	if err := h.bookmarks.Update(r.Context(), userID, bookmarkID, model.UpdateBookmark{
		Title:       req.Title,
		Description: req.Description,
	}); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	bookmarkID, err := uuid.FromString(chi.URLParam(r, "bookmarkID"))
	if err != nil {
		writeBadRequest(w, "bad bookmark id")
		return
	}
	if err := h.bookmarks.Remove(r.Context(), userID, bookmarkID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
