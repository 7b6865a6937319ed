package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"butchers-ledger/http-server/orders"
	"butchers-ledger/internal/catalog"
	"butchers-ledger/internal/storage"
)

type MockOrderOpener struct {
	mock.Mock
}

func (m *MockOrderOpener) OpenOrder(ctx context.Context, customerName string, products []storage.ProductRef) (storage.OrderRecord, error) {
	args := m.Called(ctx, customerName, products)
	return args.Get(0).(storage.OrderRecord), args.Error(1)
}

var testCat = catalog.Static{{Name: "Szynka", UnitKind: storage.UnitByWeight}}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestOpenOrder_Success(t *testing.T) {
	opener := new(MockOrderOpener)
	opener.On("OpenOrder", mock.Anything, "Jan Kowalski", []storage.ProductRef(testCat)).
		Return(storage.OrderRecord{
			ID:           7,
			CustomerName: "Jan Kowalski",
			Items:        []storage.OrderItem{{Product: testCat[0]}},
		}, nil)

	rr := post(OpenOrder(slog.New(slog.DiscardHandler), opener, testCat), `{"customer_name": "Jan Kowalski"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp orders.Order
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, "Jan Kowalski", resp.CustomerName)
	assert.True(t, resp.Placeholder)

	opener.AssertExpectations(t)
}

func TestOpenOrder_InvalidJSON(t *testing.T) {
	opener := new(MockOrderOpener)

	rr := post(OpenOrder(slog.New(slog.DiscardHandler), opener, testCat), `{"customer_name":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid JSON")
	opener.AssertNotCalled(t, "OpenOrder")
}

func TestOpenOrder_EmptyCustomer(t *testing.T) {
	opener := new(MockOrderOpener)
	opener.On("OpenOrder", mock.Anything, "  ", mock.Anything).
		Return(storage.OrderRecord{}, fmt.Errorf("ledger.OpenOrder: %w", storage.ErrEmptyCustomer))

	rr := post(OpenOrder(slog.New(slog.DiscardHandler), opener, testCat), `{"customer_name": "  "}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Customer name is required")
}

func TestOpenOrder_StorageError(t *testing.T) {
	opener := new(MockOrderOpener)
	opener.On("OpenOrder", mock.Anything, "Ewa", mock.Anything).
		Return(storage.OrderRecord{}, errors.New("file is locked"))

	rr := post(OpenOrder(slog.New(slog.DiscardHandler), opener, testCat), `{"customer_name": "Ewa"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
