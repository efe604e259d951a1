package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SankurTW/Restaurant-Management-System/internal/auth"
	"github.com/SankurTW/Restaurant-Management-System/internal/order"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type PlaceOrderItem struct {
	MenuItemID int64   `json:"menu_item_id" validate:"required,gt=0"`
	Quantity   int32   `json:"quantity" validate:"required,gt=0"`
	Price      float64 `json:"price" validate:"gte=0"`
}

type PlaceOrderRequest struct {
	CustomerName  string           `json:"customer_name" validate:"required"`
	CustomerPhone string           `json:"customer_phone" validate:"required"`
	CustomerEmail string           `json:"customer_email,omitempty" validate:"omitempty,email"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	TotalAmount   float64          `json:"total_amount" validate:"gte=0"`
	Items         []PlaceOrderItem `json:"items" validate:"required,min=1,dive"`
}

type PlaceOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending preparing ready delivered cancelled"`
}

type OrderHandler struct {
	service  order.Service
	validate *validator.Validate
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.handlePlaceOrder)
	router.Get("/orders/{id}", h.handleGetOrder)
	router.With(auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)).
		Get("/orders", h.handleListOrders)
	router.With(auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)).
		Patch("/orders/{id}/status", h.handleUpdateOrderStatus)
}

func (h *OrderHandler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var requestPayload PlaceOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("failed to decode order placement payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondValidationError(w, err)
		return
	}

	items := make([]order.OrderItem, 0, len(requestPayload.Items))
	for _, item := range requestPayload.Items {
		items = append(items, order.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	ord := order.Order{
		CustomerName:  requestPayload.CustomerName,
		CustomerPhone: requestPayload.CustomerPhone,
		CustomerEmail: requestPayload.CustomerEmail,
		PaymentMethod: requestPayload.PaymentMethod,
		TotalAmount:   requestPayload.TotalAmount,
		Items:         items,
	}

	if err := h.service.PlaceOrder(r.Context(), &ord); err != nil {
		var insufficient *order.InsufficientInventoryError
		if errors.As(err, &insufficient) {
			respondWithError(w, http.StatusInternalServerError, insufficient.Error())
			return
		}
		respondServiceError(w, err, "Failed to place order")
		return
	}

	respondWithJSON(w, http.StatusCreated, PlaceOrderResponse{
		Message: "Order placed successfully",
		OrderID: ord.ID,
	})
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ord, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get order")
		return
	}

	respondWithJSON(w, http.StatusOK, ord)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{
		Status: order.OrderStatus(r.URL.Query().Get("status")),
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err, "Failed to list orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var requestPayload UpdateOrderStatusRequest
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

	ord, err := h.service.UpdateStatus(r.Context(), id, order.OrderStatus(requestPayload.Status))
	if err != nil {
		respondServiceError(w, err, "Failed to update order status")
		return
	}

	respondWithJSON(w, http.StatusOK, ord)
}
