package update

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"butchers-ledger/http-server/httperr"
	"butchers-ledger/http-server/orders"
	"butchers-ledger/internal/annotation"
	"butchers-ledger/internal/storage"
)

type QuantitySetter interface {
	SetQuantity(ctx context.Context, orderID int, productName string, value storage.QuantityAnnotation) error
}

type Request struct {
	Product    string          `json:"product"`
	Quantity   decimal.Decimal `json:"quantity"`
	Annotation string          `json:"annotation"`
}

type Response struct {
	Status string `json:"status"`
	Cell   string `json:"cell"`
}

// SetQuantity записывает количество и партию товара в заказ.
func SetQuantity(log *slog.Logger, setter QuantitySetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.SetQuantity"

		id, err := orders.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid order id", http.StatusBadRequest)
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op)).Warn("failed to decode request", slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		req.Product = strings.TrimSpace(req.Product)
		if req.Product == "" {
			http.Error(w, "Missing required field 'product'", http.StatusBadRequest)
			return
		}

		if !annotation.Valid(req.Annotation) {
			log.With(slog.String("op", op)).Warn("annotation has characters without superscript form",
				slog.String("annotation", req.Annotation))
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		value := storage.QuantityAnnotation{Quantity: req.Quantity, Annotation: req.Annotation}
		if err := setter.SetQuantity(ctx, id, req.Product, value); err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, Response{
			Status: "updated",
			Cell:   annotation.Encode(req.Quantity, req.Annotation),
		})
	}
}
