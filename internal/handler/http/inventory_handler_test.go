package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	restHandler "github.com/SankurTW/Restaurant-Management-System/internal/handler/http"
	"github.com/SankurTW/Restaurant-Management-System/internal/inventory"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Create(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryService) GetByID(ctx context.Context, id int64) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) List(ctx context.Context) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Update(ctx context.Context, id int64, update inventory.InventoryItemUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockInventoryService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryService) Restock(ctx context.Context, id int64, amount float64) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) ListLowStock(ctx context.Context) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) CreateMapping(ctx context.Context, mapping *inventory.Mapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockInventoryService) ListMappingsByMenuItem(ctx context.Context, menuItemID int64) ([]inventory.Mapping, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Mapping), args.Error(1)
}

func (m *MockInventoryService) DeleteMapping(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newInventoryRouter(svc inventory.Service) *chi.Mux {
	router := chi.NewRouter()
	handler := restHandler.NewInventoryHandler(svc)
	handler.RegisterRoutes(router)
	return router
}

func TestInventoryHandler_List_CustomerForbidden(t *testing.T) {
	mockService := new(MockInventoryService)

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/inventory", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code, "stock levels are staff-only")
	mockService.AssertNotCalled(t, "List", mock.Anything)
}

func TestInventoryHandler_Create_Success(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(item *inventory.InventoryItem) bool {
		return item.Name == "Flour" && item.Quantity == 50 && item.Unit == "kg"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*inventory.InventoryItem).ID = 1
	}).Return(nil).Once()

	body := `{"name":"Flour","quantity":50,"unit":"kg","min_quantity":5,"cost_per_unit":0.80,"supplier":"Mill & Co"}`
	req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(body))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got inventory.InventoryItem
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(1), got.ID)
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_Create_DuplicateName(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("Create", mock.Anything, mock.Anything).
		Return(inventory.ErrInventoryNameExists).Once()

	body := `{"name":"Flour","quantity":10,"unit":"kg"}`
	req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(body))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestInventoryHandler_Restock(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("Restock", mock.Anything, int64(2), 25.5).
		Return(&inventory.InventoryItem{ID: 2, Name: "Flour", Quantity: 75.5}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/inventory/2/restock", strings.NewReader(`{"amount":25.5}`))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got inventory.InventoryItem
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, 75.5, got.Quantity)
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_Restock_RejectsNonPositiveAmount(t *testing.T) {
	for _, body := range []string{`{"amount":0}`, `{"amount":-3}`} {
		mockService := new(MockInventoryService)

		req := httptest.NewRequest(http.MethodPatch, "/inventory/2/restock", strings.NewReader(body))
		req.Header.Set("X-Role", "staff")

		rr := httptest.NewRecorder()
		newInventoryRouter(mockService).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Restock", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestInventoryHandler_Update_NegativeQuantityRejected(t *testing.T) {
	mockService := new(MockInventoryService)

	body := `{"name":"Flour","quantity":-1,"unit":"kg"}`
	req := httptest.NewRequest(http.MethodPut, "/inventory/2", strings.NewReader(body))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryHandler_ListLowStock(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("ListLowStock", mock.Anything).
		Return([]inventory.InventoryItem{{ID: 3, Name: "Mozzarella", Quantity: 0.4, MinQuantity: 1}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/inventory/low-stock", nil)
	req.Header.Set("X-Role", "admin")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var items []inventory.InventoryItem
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Mozzarella", items[0].Name)
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_Delete(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("Delete", mock.Anything, int64(7)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/inventory/7", nil)
	req.Header.Set("X-Role", "admin")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_AddIngredient(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("CreateMapping", mock.Anything, mock.MatchedBy(func(m *inventory.Mapping) bool {
		return m.MenuItemID == 1 && m.InventoryID == 2 && m.QuantityRequired == 0.2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*inventory.Mapping).ID = 10
	}).Return(nil).Once()

	body := `{"inventory_id":2,"quantity_required":0.2}`
	req := httptest.NewRequest(http.MethodPost, "/menu/1/ingredients", strings.NewReader(body))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got inventory.Mapping
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(10), got.ID)
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_AddIngredient_Duplicate(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("CreateMapping", mock.Anything, mock.Anything).
		Return(inventory.ErrMappingExists).Once()

	body := `{"inventory_id":2,"quantity_required":0.2}`
	req := httptest.NewRequest(http.MethodPost, "/menu/1/ingredients", strings.NewReader(body))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestInventoryHandler_AddIngredient_BadReference(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("CreateMapping", mock.Anything, mock.Anything).
		Return(inventory.ErrMappingBadReference).Once()

	body := `{"inventory_id":999,"quantity_required":0.2}`
	req := httptest.NewRequest(http.MethodPost, "/menu/1/ingredients", strings.NewReader(body))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestInventoryHandler_ListIngredients(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("ListMappingsByMenuItem", mock.Anything, int64(1)).
		Return([]inventory.Mapping{{ID: 10, MenuItemID: 1, InventoryID: 2, QuantityRequired: 0.2}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/menu/1/ingredients", nil)
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newInventoryRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var mappings []inventory.Mapping
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&mappings))
	assert.Len(t, mappings, 1)
	mockService.AssertExpectations(t)
}

func TestInventoryHandler_RemoveIngredient(t *testing.T) {
	mockService := new(MockInventoryService)
	mockService.On("DeleteMapping", mock.Anything, int64(10)).Return(nil).Once()
	mockService.On("DeleteMapping", mock.Anything, int64(11)).Return(inventory.ErrMappingNotFound).Once()

	router := newInventoryRouter(mockService)

	req := httptest.NewRequest(http.MethodDelete, "/menu/ingredients/10", nil)
	req.Header.Set("X-Role", "staff")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/menu/ingredients/11", nil)
	req.Header.Set("X-Role", "staff")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
