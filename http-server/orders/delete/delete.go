package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"butchers-ledger/http-server/httperr"
	"butchers-ledger/http-server/orders"
)

type OrderDeleter interface {
	DeleteOrder(ctx context.Context, orderID int) error
}

type Response struct {
	Status string `json:"status"`
	ID     int    `json:"id"`
}

// DeleteOrder удаляет строку заказа, строки ниже сдвигаются вверх.
func DeleteOrder(log *slog.Logger, deleter OrderDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.DeleteOrder"

		id, err := orders.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "Invalid order id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteOrder(ctx, id); err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		log.Info("order deleted", slog.Int("id", id))

		render.JSON(w, r, Response{Status: "deleted", ID: id})
	}
}
