package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SankurTW/Restaurant-Management-System/internal/inventory"
	"github.com/SankurTW/Restaurant-Management-System/internal/menu"
	"github.com/SankurTW/Restaurant-Management-System/internal/order"
	"github.com/SankurTW/Restaurant-Management-System/internal/payment"
	"github.com/SankurTW/Restaurant-Management-System/internal/user"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

// respondValidationError renders validator.v10 failures as a field → hint
// map; any other error type falls back to a plain 500.
func respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		log.Error().Err(err).Msg("unexpected error type during validation")
		respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		return
	}
	respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:   "Validation failed",
		Details: formatValidationErrors(validationErrors),
	})
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		case "email":
			details[fe.Field()] = "must be a valid email address"
		case "min":
			details[fe.Field()] = fmt.Sprintf("must have at least %s elements or characters", fe.Param())
		case "gt":
			details[fe.Field()] = fmt.Sprintf("must be greater than %s", fe.Param())
		case "gte":
			details[fe.Field()] = fmt.Sprintf("must be %s or more", fe.Param())
		case "oneof":
			details[fe.Field()] = fmt.Sprintf("must be one of: %s", fe.Param())
		default:
			details[fe.Field()] = fmt.Sprintf("failed the %q check", fe.Tag())
		}
	}
	return details
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return id, nil
}

func mapErrorToStatusCode(err error) int {
	var transition *order.InvalidTransitionError
	switch {
	case errors.Is(err, menu.ErrMenuItemNotFound),
		errors.Is(err, inventory.ErrInventoryItemNotFound),
		errors.Is(err, inventory.ErrMappingNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, payment.ErrPaymentNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, menu.ErrMenuItemInUse),
		errors.Is(err, inventory.ErrInventoryNameExists),
		errors.Is(err, inventory.ErrMappingExists),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, payment.ErrPaymentFinalized):
		return http.StatusConflict
	case errors.As(err, &transition):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrMappingBadReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, menu.ErrInvalidMenuItem),
		errors.Is(err, inventory.ErrInvalidInventoryItem),
		errors.Is(err, inventory.ErrNegativeQuantity),
		errors.Is(err, order.ErrInvalidOrder),
		errors.Is(err, order.ErrMenuItemUnknown),
		errors.Is(err, payment.ErrInvalidPayment),
		errors.Is(err, user.ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError maps a service error to a status code. Client
// errors carry the sentinel's message; server errors are logged and get
// the fallback message so internals never leak.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	code := mapErrorToStatusCode(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(fallback)
		respondWithError(w, code, fallback)
		return
	}
	respondWithError(w, code, err.Error())
}
