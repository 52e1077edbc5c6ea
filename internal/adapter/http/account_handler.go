package http

import (
	"net/http"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

// AccountHandler serves the caller's own identity and profile.
type AccountHandler struct {
	profiles interfaces.ProfileService
	logger   logger.Logger
}

func NewAccountHandler(profiles interfaces.ProfileService, logger logger.Logger) *AccountHandler {
	return &AccountHandler{
		profiles: profiles,
		logger:   logger,
	}
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	respondJSON(w, http.StatusOK, identity)
}

func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	profile, err := h.profiles.Get(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{action: "profile_fetch_failed", internal: "Failed to get profile"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	text := errorText{action: "profile_update_failed", internal: "Failed to update profile"}

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	if _, err := h.profiles.UpdateDisplayName(r.Context(), identity.UserID, req.DisplayName); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	respondSuccess(w)
}
