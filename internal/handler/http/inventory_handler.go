package http

import (
	"encoding/json"
	"net/http"

	"github.com/SankurTW/Restaurant-Management-System/internal/auth"
	"github.com/SankurTW/Restaurant-Management-System/internal/inventory"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type InventoryItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Unit        string  `json:"unit" validate:"required"`
	MinQuantity float64 `json:"min_quantity" validate:"gte=0"`
	CostPerUnit float64 `json:"cost_per_unit" validate:"gte=0"`
	Supplier    string  `json:"supplier"`
}

type RestockRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type MappingRequest struct {
	InventoryID      int64   `json:"inventory_id" validate:"required,gt=0"`
	QuantityRequired float64 `json:"quantity_required" validate:"required,gt=0"`
}

type InventoryHandler struct {
	service  inventory.Service
	validate *validator.Validate
}

func NewInventoryHandler(service inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes also claims the recipe endpoints under /menu, since a
// recipe line belongs to the stock domain rather than the menu card.
func (h *InventoryHandler) RegisterRoutes(router chi.Router) {
	staffOnly := router.With(auth.RequireRole(auth.RoleStaff, auth.RoleAdmin))

	staffOnly.Get("/inventory", h.handleListInventory)
	staffOnly.Get("/inventory/low-stock", h.handleListLowStock)
	staffOnly.Get("/inventory/{id}", h.handleGetInventoryItem)
	staffOnly.Post("/inventory", h.handleCreateInventoryItem)
	staffOnly.Put("/inventory/{id}", h.handleUpdateInventoryItem)
	staffOnly.Delete("/inventory/{id}", h.handleDeleteInventoryItem)
	staffOnly.Patch("/inventory/{id}/restock", h.handleRestock)

	staffOnly.Get("/menu/{id}/ingredients", h.handleListIngredients)
	staffOnly.Post("/menu/{id}/ingredients", h.handleAddIngredient)
	staffOnly.Delete("/menu/ingredients/{mappingID}", h.handleRemoveIngredient)
}

func (h *InventoryHandler) handleListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list inventory")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) handleListLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListLowStock(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list low stock items")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) handleGetInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get inventory item")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) handleCreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	requestPayload, ok := h.decodeInventoryItem(w, r)
	if !ok {
		return
	}

	item := inventory.InventoryItem{
		Name:        requestPayload.Name,
		Quantity:    requestPayload.Quantity,
		Unit:        requestPayload.Unit,
		MinQuantity: requestPayload.MinQuantity,
		CostPerUnit: requestPayload.CostPerUnit,
		Supplier:    requestPayload.Supplier,
	}

	if err := h.service.Create(r.Context(), &item); err != nil {
		respondServiceError(w, err, "Failed to create inventory item")
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

func (h *InventoryHandler) handleUpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	requestPayload, ok := h.decodeInventoryItem(w, r)
	if !ok {
		return
	}

	update := inventory.InventoryItemUpdate{
		Name:        requestPayload.Name,
		Quantity:    requestPayload.Quantity,
		Unit:        requestPayload.Unit,
		MinQuantity: requestPayload.MinQuantity,
		CostPerUnit: requestPayload.CostPerUnit,
		Supplier:    requestPayload.Supplier,
	}

	if err := h.service.Update(r.Context(), id, update); err != nil {
		respondServiceError(w, err, "Failed to update inventory item")
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get inventory item")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) handleDeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete inventory item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) handleRestock(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var requestPayload RestockRequest
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

	item, err := h.service.Restock(r.Context(), id, requestPayload.Amount)
	if err != nil {
		respondServiceError(w, err, "Failed to restock inventory item")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	menuItemID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	mappings, err := h.service.ListMappingsByMenuItem(r.Context(), menuItemID)
	if err != nil {
		respondServiceError(w, err, "Failed to list ingredients")
		return
	}

	respondWithJSON(w, http.StatusOK, mappings)
}

func (h *InventoryHandler) handleAddIngredient(w http.ResponseWriter, r *http.Request) {
	menuItemID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var requestPayload MappingRequest
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

	mapping := inventory.Mapping{
		MenuItemID:       menuItemID,
		InventoryID:      requestPayload.InventoryID,
		QuantityRequired: requestPayload.QuantityRequired,
	}

	if err := h.service.CreateMapping(r.Context(), &mapping); err != nil {
		respondServiceError(w, err, "Failed to add ingredient")
		return
	}

	respondWithJSON(w, http.StatusCreated, mapping)
}

func (h *InventoryHandler) handleRemoveIngredient(w http.ResponseWriter, r *http.Request) {
	mappingID, err := parseIDParam(r, "mappingID")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteMapping(r.Context(), mappingID); err != nil {
		respondServiceError(w, err, "Failed to remove ingredient")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) decodeInventoryItem(w http.ResponseWriter, r *http.Request) (InventoryItemRequest, bool) {
	var requestPayload InventoryItemRequest

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
