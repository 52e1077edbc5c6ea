package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func respondSuccess(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// errorText holds the client-facing messages of one endpoint. Empty fields
// fall back to generic text.
type errorText struct {
	action    string
	notFound  string
	forbidden string
	internal  string
}

// respondServiceError maps service errors onto status codes. Anything not in
// the taxonomy is logged and answered with the endpoint's generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error, text errorText) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrDuplicateName):
		respondError(w, http.StatusBadRequest, "A business with this name already exists. Please choose a different name.")
	case errors.Is(err, domain.ErrOwnerAlreadyHasBusiness):
		respondError(w, http.StatusBadRequest, "You already have a business registered")
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, fallback(text.notFound, "Not found"))
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, fallback(text.forbidden, "Forbidden"))
	case errors.Is(err, domain.ErrDuplicateRequest):
		respondError(w, http.StatusConflict, "Duplicate request")
	default:
		log.Error(fallback(text.action, "request_failed"), fallback(text.internal, "Internal server error"), requestID(r.Context()),
			map[string]interface{}{"method": r.Method, "path": r.URL.Path}, err)
		respondError(w, http.StatusInternalServerError, fallback(text.internal, "Internal server error"))
	}
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("Invalid id")
	}
	return id, nil
}

// flexString accepts a JSON string or number. Prices arrive both ways.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(string(data), `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
