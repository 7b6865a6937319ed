package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"butchers-ledger/internal/storage"
)

// Write maps ledger errors onto HTTP statuses.
func Write(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	l := log.With(slog.String("op", op), slog.String("error", err.Error()))

	switch {
	case errors.Is(err, storage.ErrOrderNotFound):
		l.Warn("order not found")
		http.Error(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrEmptyTable):
		l.Warn("ledger is empty")
		http.Error(w, "Ledger is empty", http.StatusNotFound)
	case errors.Is(err, storage.ErrColumnNotFound):
		l.Warn("unknown product column")
		http.Error(w, "Unknown product", http.StatusBadRequest)
	case errors.Is(err, storage.ErrEmptyCustomer):
		http.Error(w, "Customer name is required", http.StatusBadRequest)
	case errors.Is(err, storage.ErrNegativeQuantity):
		http.Error(w, "Quantity must not be negative", http.StatusBadRequest)
	default:
		l.Error("request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
