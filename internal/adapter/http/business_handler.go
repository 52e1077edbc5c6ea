package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

type BusinessHandler struct {
	service interfaces.BusinessService
	logger  logger.Logger
}

func NewBusinessHandler(service interfaces.BusinessService, logger logger.Logger) *BusinessHandler {
	return &BusinessHandler{
		service: service,
		logger:  logger,
	}
}

type CreateBusinessRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
}

type CreateBusinessResponse struct {
	Success    bool   `json:"success"`
	BusinessID int64  `json:"businessId"`
	Slug       string `json:"slug"`
}

type UpdateBusinessRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	CustomLinkURL  *string `json:"customLinkUrl"`
	CustomLinkText *string `json:"customLinkText"`
}

func (h *BusinessHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	business, err := h.service.GetMine(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{action: "business_fetch_failed", internal: "Failed to fetch business"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"business": business})
}

func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req CreateBusinessRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, err, errorText{})
		return
	}

	business, err := h.service.Create(r.Context(), identity.UserID, interfaces.CreateBusinessCommand{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{action: "business_create_failed", internal: "Failed to create business"})
		return
	}

	respondJSON(w, http.StatusCreated, CreateBusinessResponse{Success: true, BusinessID: business.ID, Slug: business.Slug})
}

func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())

	var req UpdateBusinessRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, err, errorText{})
		return
	}

	_, err := h.service.Update(r.Context(), identity.UserID, domain.BusinessPatch{
		Name:           req.Name,
		Description:    req.Description,
		Address:        req.Address,
		Phone:          req.Phone,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		CustomLinkURL:  req.CustomLinkURL,
		CustomLinkText: req.CustomLinkText,
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{
			action:   "business_update_failed",
			notFound: "No business found",
			internal: "Failed to update business",
		})
		return
	}
	respondSuccess(w)
}

func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	if err := h.service.Delete(r.Context(), identity.UserID); err != nil {
		respondServiceError(w, r, h.logger, err, errorText{
			action:   "business_delete_failed",
			notFound: "No business found",
			internal: "Failed to delete business",
		})
		return
	}
	respondSuccess(w)
}

func (h *BusinessHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	storefront, err := h.service.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{
			action:   "business_fetch_failed",
			notFound: "Business not found",
			internal: "Failed to fetch business",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"business": storefront})
}
