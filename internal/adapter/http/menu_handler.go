package http

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
	"github.com/YelzhanWeb/basecart/internal/interfaces"
)

type MenuHandler struct {
	service interfaces.MenuService
	logger  logger.Logger
}

func NewMenuHandler(service interfaces.MenuService, logger logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

type MenuItemRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       flexString `json:"price"`
	Category    string     `json:"category"`
	ImageURL    *string    `json:"image_url"`
	IsAvailable bool       `json:"is_available"`
	SortOrder   int        `json:"sort_order"`
}

func (req MenuItemRequest) toInput() (domain.MenuItemInput, error) {
	in := domain.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
		SortOrder:   req.SortOrder,
	}
	if strings.TrimSpace(string(req.Price)) != "" {
		price, err := domain.ParsePrice(string(req.Price))
		if err != nil {
			return in, err
		}
		in.Price = &price
	}
	return in, nil
}

type ImportRowRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       flexString `json:"price"`
	Category    string     `json:"category"`
}

type ImportRequest struct {
	Items []ImportRowRequest `json:"items"`
}

type ImportResponse struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

type CreatedResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	items, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{action: "menu_fetch_failed", internal: "Failed to fetch menu"})
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListPublic(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondServiceError(w, r, h.logger, err, errorText{
			action:   "menu_fetch_failed",
			notFound: "Business not found",
			internal: "Failed to fetch menu",
		})
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	text := errorText{action: "menu_create_failed", internal: "Failed to create item"}

	var req MenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}

	item, err := h.service.Create(r.Context(), identity.UserID, in)
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	respondJSON(w, http.StatusCreated, CreatedResponse{Success: true, ID: item.ID})
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	text := errorText{
		action:    "menu_update_failed",
		notFound:  "Item not found",
		forbidden: "Item belongs to another business",
		internal:  "Failed to update item",
	}

	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	var req MenuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}

	if _, err := h.service.Update(r.Context(), identity.UserID, id, in); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	respondSuccess(w)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	text := errorText{
		action:    "menu_delete_failed",
		notFound:  "Item not found",
		forbidden: "Item belongs to another business",
		internal:  "Failed to delete item",
	}

	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	respondSuccess(w)
}

// Import accepts either a JSON body {"items": [...]} or a text/csv document.
func (h *MenuHandler) Import(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r.Context())
	text := errorText{action: "menu_import_failed", internal: "Failed to import menu items"}

	var rows []domain.ImportRow
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "text/csv" {
		parsed, err := h.service.ParseCSV(r.Body)
		if err != nil {
			respondServiceError(w, r, h.logger, err, text)
			return
		}
		rows = parsed
	} else {
		var req ImportRequest
		if err := decodeJSON(r, &req); err != nil {
			respondServiceError(w, r, h.logger, err, text)
			return
		}
		for _, item := range req.Items {
			rows = append(rows, domain.ImportRow{
				Name:        item.Name,
				Description: item.Description,
				Price:       string(item.Price),
				Category:    item.Category,
			})
		}
	}

	result, err := h.service.BulkImport(r.Context(), identity.UserID, rows)
	if err != nil {
		respondServiceError(w, r, h.logger, err, text)
		return
	}
	respondJSON(w, http.StatusOK, ImportResponse{Success: true, Imported: result.Imported, Errors: result.Errors})
}
