package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/akarneev/shelfmark/internal/model"
)

type profileDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProfileDTO(p model.Profile) profileDTO {
	return profileDTO{
		ID:        p.ID.String(),
		Name:      p.Name,
		Color:     p.Color,
		IsDefault: p.IsDefault,
		CreatedAt: p.CreatedAt,
	}
}

type idResponse struct {
	ID string `json:"id"`
}

type createProfileRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// listProfiles renders an empty list for identity-less requests.
func (h *handlers) listProfiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, []profileDTO{})
		return
	}
	ps, err := h.profiles.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	out := make([]profileDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProfileDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// getDefaultProfile renders JSON null for identity-less requests and for
// owners without any profile.
func (h *handlers) getDefaultProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	p, err := h.profiles.GetDefault(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if p == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(*p))
}

func (h *handlers) ensureDefaultProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	id, err := h.profiles.EnsureDefault(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if id == uuid.Nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id.String()})
}

func (h *handlers) createProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad json")
		return
	}
	id, err := h.profiles.Create(r.Context(), userID, model.NewProfile{
		Name:      req.Name,
		Color:     req.Color,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id.String()})
}

func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	profileID, err := uuid.FromString(chi.URLParam(r, "profileID"))
	if err != nil {
		writeBadRequest(w, "bad profile id")
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "bad json")
		return
	}
	if err := h.profiles.Update(r.Context(), userID, profileID, model.UpdateProfile{
		Name:  req.Name,
		Color: req.Color,
	}); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) setDefaultProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	profileID, err := uuid.FromString(chi.URLParam(r, "profileID"))
	if err != nil {
		writeBadRequest(w, "bad profile id")
		return
	}
	if err := h.profiles.SetDefault(r.Context(), userID, profileID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}
	profileID, err := uuid.FromString(chi.URLParam(r, "profileID"))
	if err != nil {
		writeBadRequest(w, "bad profile id")
		return
	}
	if err := h.profiles.Remove(r.Context(), userID, profileID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
