package http

import (
	"encoding/json"
	"net/http"

	"github.com/SankurTW/Restaurant-Management-System/internal/auth"
	"github.com/SankurTW/Restaurant-Management-System/internal/menu"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,oneof=appetizer main_course dessert beverage"`
	IsAvailable *bool   `json:"is_available"`
}

type MenuHandler struct {
	service  menu.Service
	validate *validator.Validate
}

func NewMenuHandler(service menu.Service) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *MenuHandler) RegisterRoutes(router chi.Router) {
	router.Get("/menu", h.handleListMenu)
	router.Get("/menu/{id}", h.handleGetMenuItem)

	staffOnly := router.With(auth.RequireRole(auth.RoleStaff, auth.RoleAdmin))
	staffOnly.Post("/menu", h.handleCreateMenuItem)
	staffOnly.Put("/menu/{id}", h.handleUpdateMenuItem)
	staffOnly.Delete("/menu/{id}", h.handleDeleteMenuItem)
}

func (h *MenuHandler) handleListMenu(w http.ResponseWriter, r *http.Request) {
	filter := menu.ListFilter{
		Category:      menu.Category(r.URL.Query().Get("category")),
		AvailableOnly: r.URL.Query().Get("available") == "true",
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err, "Failed to list menu items")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) handleGetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get menu item")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) handleCreateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestPayload, ok := h.decodeMenuItem(w, r)
	if !ok {
		return
	}

	// New dishes default to available unless the payload says otherwise.
	available := true
	if requestPayload.IsAvailable != nil {
		available = *requestPayload.IsAvailable
	}

	item := menu.MenuItem{
		Name:        requestPayload.Name,
		Description: requestPayload.Description,
		Price:       requestPayload.Price,
		Category:    menu.Category(requestPayload.Category),
		IsAvailable: available,
	}

	if err := h.service.Create(r.Context(), &item); err != nil {
		respondServiceError(w, err, "Failed to create menu item")
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) handleUpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	requestPayload, ok := h.decodeMenuItem(w, r)
	if !ok {
		return
	}

	available := true
	if requestPayload.IsAvailable != nil {
		available = *requestPayload.IsAvailable
	}

	update := menu.MenuItemUpdate{
		Name:        requestPayload.Name,
		Description: requestPayload.Description,
		Price:       requestPayload.Price,
		Category:    menu.Category(requestPayload.Category),
		IsAvailable: available,
	}

	if err := h.service.Update(r.Context(), id, update); err != nil {
		respondServiceError(w, err, "Failed to update menu item")
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get menu item")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) handleDeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete menu item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) decodeMenuItem(w http.ResponseWriter, r *http.Request) (MenuItemRequest, bool) {
	var requestPayload MenuItemRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return requestPayload, false
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondValidationError(w, err)
		return requestPayload, false
	}

	return requestPayload, true
}
