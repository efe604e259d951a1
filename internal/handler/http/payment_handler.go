package http

import (
	"encoding/json"
	"net/http"

	"github.com/SankurTW/Restaurant-Management-System/internal/auth"
	"github.com/SankurTW/Restaurant-Management-System/internal/payment"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type UpdatePaymentStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=completed failed"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type PaymentHandler struct {
	service  payment.Service
	validate *validator.Validate
}

func NewPaymentHandler(service payment.Service) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *PaymentHandler) RegisterRoutes(router chi.Router) {
	router.Get("/payments/{orderID}", h.handleGetPayment)
	router.With(auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)).
		Patch("/payments/{id}/status", h.handleUpdatePaymentStatus)
}

func (h *PaymentHandler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r, "orderID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.GetByOrderID(r.Context(), orderID)
	if err != nil {
		respondServiceError(w, err, "Failed to get payment")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) handleUpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var requestPayload UpdatePaymentStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondValidationError(w, err)
		return
	}

	p, err := h.service.UpdateStatus(r.Context(), id, payment.Status(requestPayload.Status), requestPayload.TransactionID)
	if err != nil {
		respondServiceError(w, err, "Failed to update payment status")
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}
