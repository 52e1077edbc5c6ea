package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

type TrackingHandler struct {
	service interfaces.TrackingService
	logger  logger.Logger
}

func NewTrackingHandler(service interfaces.TrackingService, logger logger.Logger) *TrackingHandler {
	return &TrackingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Track(r.Context(), mux.Vars(r)["orderNumber"])
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{
			action:   "order_track_failed",
			notFound: "Order not found",
			internal: "Failed to fetch order",
		})
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *TrackingHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.service.History(r.Context(), q.Get("email"), q.Get("phone"))
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{action: "order_history_failed", internal: "Failed to fetch order history"})
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
