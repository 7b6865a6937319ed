package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"butchers-ledger/http-server/httperr"
	"butchers-ledger/internal/service/aggregate"
)

type ReportProvider interface {
	Report(ctx context.Context) (aggregate.Report, error)
}

// GetSummary отдает итоги по товарам и потребность в сырье.
func GetSummary(log *slog.Logger, reports ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.summary.GetSummary"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report, err := reports.Report(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, report)
	}
}
