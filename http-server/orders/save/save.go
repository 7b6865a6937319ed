package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"butchers-ledger/http-server/httperr"
	"butchers-ledger/http-server/orders"
	"butchers-ledger/internal/storage"
)

type OrderOpener interface {
	OpenOrder(ctx context.Context, customerName string, catalog []storage.ProductRef) (storage.OrderRecord, error)
}

type CatalogProvider interface {
	Products(ctx context.Context) ([]storage.ProductRef, error)
}

type Request struct {
	CustomerName string `json:"customer_name"`
}

// OpenOrder добавляет в таблицу новую строку заказа.
func OpenOrder(log *slog.Logger, opener OrderOpener, catalog CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.OpenOrder"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op)).Warn("failed to decode request", slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		products, err := catalog.Products(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		record, err := opener.OpenOrder(ctx, req.CustomerName, products)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		log.Info("order opened", slog.Int("id", record.ID), slog.String("customer", record.CustomerName))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, orders.FromRecord(record))
	}
}
