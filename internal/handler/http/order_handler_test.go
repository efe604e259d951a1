package http_test

import (
	"bytes"
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
	"github.com/SankurTW/Restaurant-Management-System/internal/order"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, ord *order.Order) error {
	args := m.Called(ctx, ord)
	return args.Error(0)
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, to order.OrderStatus) (*order.Order, error) {
	args := m.Called(ctx, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newOrderRouter(svc order.Service) *chi.Mux {
	router := chi.NewRouter()
	handler := restHandler.NewOrderHandler(svc)
	handler.RegisterRoutes(router)
	return router
}

func placementBody() restHandler.PlaceOrderRequest {
	return restHandler.PlaceOrderRequest{
		CustomerName:  "John Doe",
		CustomerPhone: "+1-202-555-0134",
		CustomerEmail: "john@example.com",
		PaymentMethod: "card",
		TotalAmount:   19.98,
		Items: []restHandler.PlaceOrderItem{
			{MenuItemID: 1, Quantity: 2, Price: 9.99},
		},
	}
}

func TestOrderHandler_PlaceOrder_Success(t *testing.T) {
	mockService := new(MockOrderService)
	mockService.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.CustomerName == "John Doe" && len(o.Items) == 1 && o.Items[0].Quantity == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*order.Order).ID = 42
	}).Return(nil).Once()

	jsonBody, err := json.Marshal(placementBody())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	newOrderRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var response restHandler.PlaceOrderResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Equal(t, int64(42), response.OrderID)
	assert.Equal(t, "Order placed successfully", response.Message)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_PlaceOrder_MalformedJSON(t *testing.T) {
	mockService := new(MockOrderService)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"customer_name": `))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	newOrderRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestOrderHandler_PlaceOrder_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *restHandler.PlaceOrderRequest)
	}{
		{"missing_customer_name", func(p *restHandler.PlaceOrderRequest) { p.CustomerName = "" }},
		{"missing_phone", func(p *restHandler.PlaceOrderRequest) { p.CustomerPhone = "" }},
		{"bad_email", func(p *restHandler.PlaceOrderRequest) { p.CustomerEmail = "nope" }},
		{"no_items", func(p *restHandler.PlaceOrderRequest) { p.Items = nil }},
		{"zero_quantity", func(p *restHandler.PlaceOrderRequest) { p.Items[0].Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)

			body := placementBody()
			tt.mutate(&body)
			jsonBody, err := json.Marshal(body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()
			newOrderRouter(mockService).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var response restHandler.ValidationErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			assert.Equal(t, "Validation failed", response.Error)
			assert.NotEmpty(t, response.Details)
			mockService.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderHandler_PlaceOrder_TotalMismatch(t *testing.T) {
	mockService := new(MockOrderService)
	mockService.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(order.ErrInvalidOrder).Once()

	jsonBody, err := json.Marshal(placementBody())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))

	rr := httptest.NewRecorder()
	newOrderRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_PlaceOrder_InsufficientInventory(t *testing.T) {
	mockService := new(MockOrderService)
	mockService.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(&order.InsufficientInventoryError{MenuItemID: 1, Ingredient: "Flour"}).Once()

	jsonBody, err := json.Marshal(placementBody())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(jsonBody))

	rr := httptest.NewRecorder()
	newOrderRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	assert.Contains(t, response["error"], "Flour", "the response must name the exhausted ingredient")
}

func TestOrderHandler_GetOrder(t *testing.T) {
	mockService := new(MockOrderService)
	mockService.On("GetByID", mock.Anything, int64(5)).
		Return(&order.Order{ID: 5, CustomerName: "John Doe", Status: order.StatusPending}, nil).Once()
	mockService.On("GetByID", mock.Anything, int64(99)).
		Return(nil, order.ErrOrderNotFound).Once()

	router := newOrderRouter(mockService)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/5", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got order.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(5), got.ID)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/99", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	mockService := new(MockOrderService)
	mockService.On("UpdateStatus", mock.Anything, int64(5), order.StatusPreparing).
		Return(&order.Order{ID: 5, Status: order.StatusPreparing}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/orders/5/status", strings.NewReader(`{"status":"preparing"}`))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newOrderRouter(mockService).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got order.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, order.StatusPreparing, got.Status)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	mockService := new(MockOrderService)
	mockService.On("UpdateStatus", mock.Anything, int64(5), order.StatusDelivered).
		Return(nil, &order.InvalidTransitionError{From: order.StatusPending, To: order.StatusDelivered}).Once()

	req := httptest.NewRequest(http.MethodPatch, "/orders/5/status", strings.NewReader(`{"status":"delivered"}`))
	req.Header.Set("X-Role", "staff")

	rr := httptest.NewRecorder()
	newOrderRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestOrderHandler_UpdateStatus_CustomerForbidden(t *testing.T) {
	mockService := new(MockOrderService)

	req := httptest.NewRequest(http.MethodPatch, "/orders/5/status", strings.NewReader(`{"status":"preparing"}`))

	rr := httptest.NewRecorder()
	newOrderRouter(mockService).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code, "unauthenticated callers default to customer and may not change statuses")
	mockService.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
