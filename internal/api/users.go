package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/garderoba/internal/store"
)

// UsersHandler handles profile endpoints.
type UsersHandler struct {
	DB *sql.DB
}

type updateProfileRequest struct {
	Name             *string `json:"name"`
	WashDurationDays *int    `json:"wash_duration_days"`
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// Update handles PUT /api/users/me. Absent fields keep their current value.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil || user == nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	name := user.Name
	washDays := user.WashDurationDays
	if req.Name != nil {
		if *req.Name == "" {
			jsonError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		name = *req.Name
	}
	if req.WashDurationDays != nil {
		if *req.WashDurationDays < 0 {
			jsonError(w, http.StatusBadRequest, "wash duration cannot be negative")
			return
		}
		washDays = *req.WashDurationDays
	}

	if err := store.UpdateProfile(r.Context(), h.DB, claims.UserID, name, washDays); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	updated, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}
