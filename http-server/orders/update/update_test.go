package update

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"butchers-ledger/internal/storage"
)

type MockQuantitySetter struct {
	mock.Mock
}

func (m *MockQuantitySetter) SetQuantity(ctx context.Context, orderID int, productName string, value storage.QuantityAnnotation) error {
	args := m.Called(ctx, orderID, productName, value)
	return args.Error(0)
}

func put(setter QuantitySetter, path, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Put("/api/orders/{id}/items", SetQuantity(slog.New(slog.DiscardHandler), setter))

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSetQuantity_Success(t *testing.T) {
	setter := new(MockQuantitySetter)
	setter.On("SetQuantity", mock.Anything, 5, "Kiełbasa", mock.MatchedBy(func(v storage.QuantityAnnotation) bool {
		return v.Quantity.Equal(decimal.NewFromInt(12)) && v.Annotation == "b2"
	})).Return(nil)

	rr := put(setter, "/api/orders/5/items", `{"product": "Kiełbasa", "quantity": 12, "annotation": "b2"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "updated", "cell": "12ᵇ²"}`, rr.Body.String())
	setter.AssertExpectations(t)
}

func TestSetQuantity_Validation(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"bad id", "/api/orders/x/items", `{"product": "Szynka", "quantity": 1}`},
		{"bad json", "/api/orders/5/items", `{"product":`},
		{"no product", "/api/orders/5/items", `{"quantity": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setter := new(MockQuantitySetter)

			rr := put(setter, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			setter.AssertNotCalled(t, "SetQuantity")
		})
	}
}

func TestSetQuantity_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"order not found", fmt.Errorf("ledger.SetQuantity: %w", storage.ErrOrderNotFound), http.StatusNotFound},
		{"unknown product", fmt.Errorf("ledger.SetQuantity: %w", storage.ErrColumnNotFound), http.StatusBadRequest},
		{"negative", fmt.Errorf("ledger.SetQuantity: %w", storage.ErrNegativeQuantity), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setter := new(MockQuantitySetter)
			setter.On("SetQuantity", mock.Anything, 5, "Szynka", mock.Anything).Return(tt.err)

			rr := put(setter, "/api/orders/5/items", `{"product": "Szynka", "quantity": "-1"}`)

			assert.Equal(t, tt.status, rr.Code)
		})
	}
}
