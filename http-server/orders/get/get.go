package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"butchers-ledger/http-server/httperr"
	"butchers-ledger/http-server/orders"
	"butchers-ledger/internal/ledger"
	"butchers-ledger/internal/storage"
)

type OrderProvider interface {
	LoadAll(ctx context.Context, catalog []storage.ProductRef) ([]storage.OrderRecord, error)
	Find(ctx context.Context, orderID int, catalog []storage.ProductRef) (storage.OrderRecord, error)
	NextOrderID(ctx context.Context, existing []storage.OrderRecord) (int, error)
}

type CatalogProvider interface {
	Products(ctx context.Context) ([]storage.ProductRef, error)
}

type ResponseOrders struct {
	Orders []orders.Order `json:"orders"`
	Count  int            `json:"count"`
}

// GetOrders отдает активные заказы, с ?all=true также пустые.
func GetOrders(log *slog.Logger, provider OrderProvider, catalog CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.GetOrders"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		products, err := catalog.Products(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		records, err := provider.LoadAll(ctx, products)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		if r.URL.Query().Get("all") != "true" {
			records = ledger.Active(records)
		}

		render.JSON(w, r, ResponseOrders{
			Orders: orders.FromRecords(records),
			Count:  len(records),
		})
	}
}

func GetOrder(log *slog.Logger, provider OrderProvider, catalog CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.GetOrder"

		id, err := orders.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			log.With(slog.String("op", op)).Warn("bad order id", slog.String("error", err.Error()))
			http.Error(w, "Invalid order id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		products, err := catalog.Products(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		record, err := provider.Find(ctx, id, products)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, orders.FromRecord(record))
	}
}

type ResponseNextID struct {
	ID int `json:"id"`
}

// GetNextOrderID отдает номер, который получит следующий заказ.
func GetNextOrderID(log *slog.Logger, provider OrderProvider, catalog CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.GetNextOrderID"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		products, err := catalog.Products(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		existing, err := provider.LoadAll(ctx, products)
		if err != nil && !errors.Is(err, storage.ErrEmptyTable) {
			httperr.Write(w, log, op, err)
			return
		}

		id, err := provider.NextOrderID(ctx, existing)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, ResponseNextID{ID: id})
	}
}
