package generate_excel

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"butchers-ledger/http-server/httperr"
	excelreport "butchers-ledger/internal/service/generate-excel"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second) // на Excel можно побольше времени
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx)
		if err != nil {
			httperr.Write(w, log, op, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+excelreport.FileName(time.Now()))
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel response", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
