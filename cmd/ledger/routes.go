package main

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	generate_excel "butchers-ledger/http-server/generate-report/generate-excel"
	deleteorder "butchers-ledger/http-server/orders/delete"
	getorders "butchers-ledger/http-server/orders/get"
	saveorder "butchers-ledger/http-server/orders/save"
	updateorder "butchers-ledger/http-server/orders/update"
	getsummary "butchers-ledger/http-server/summary/get"
	"butchers-ledger/internal/ledger"
	"butchers-ledger/internal/middleware/serialize"
	"butchers-ledger/internal/service/aggregate"
	excelreport "butchers-ledger/internal/service/generate-excel"
)

func routes(
	log *slog.Logger,
	ledgerLock sync.Locker,
	orders *ledger.Ledger,
	products aggregate.Catalog,
	reports *aggregate.Service,
	genService *excelreport.GenerateExcelService,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	// таблица не поддерживает параллельную запись, запросы идут по одному
	router.Use(middleware.ThrottleBacklog(1, 64, 30*time.Second))
	router.Use(serialize.Serialize(ledgerLock))

	router.Get("/api/orders", getorders.GetOrders(log, orders, products))
	router.Get("/api/orders/next-id", getorders.GetNextOrderID(log, orders, products))
	router.Get("/api/orders/{id}", getorders.GetOrder(log, orders, products))
	router.Post("/api/orders", saveorder.OpenOrder(log, orders, products))
	router.Put("/api/orders/{id}/items", updateorder.SetQuantity(log, orders))
	router.Delete("/api/orders/{id}", deleteorder.DeleteOrder(log, orders))

	router.Get("/api/summary", getsummary.GetSummary(log, reports))
	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, genService))

	return router
}
