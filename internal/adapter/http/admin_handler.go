package http

import (
	"net/http"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

// AdminHandler exposes the cross-tenant views to allow-listed administrators.
type AdminHandler struct {
	service interfaces.PlatformService
	logger  logger.Logger
}

func NewAdminHandler(service interfaces.PlatformService, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AdminHandler) Businesses(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	list, err := h.service.ListBusinesses(r.Context(), identity)
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{
			action:    "admin_businesses_failed",
			forbidden: "Unauthorized",
			internal:  "Failed to fetch businesses",
		})
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	stats, err := h.service.Stats(r.Context(), identity)
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{
			action:    "admin_stats_failed",
			forbidden: "Unauthorized",
			internal:  "Failed to fetch stats",
		})
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
