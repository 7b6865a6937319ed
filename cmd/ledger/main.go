package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/api/option"

	"butchers-ledger/internal/catalog"
	"butchers-ledger/internal/config"
	"butchers-ledger/internal/factors"
	"butchers-ledger/internal/ledger"
	"butchers-ledger/internal/scheduler"
	"butchers-ledger/internal/service/aggregate"
	generate_excel "butchers-ledger/internal/service/generate-excel"
	"butchers-ledger/internal/storage"
	"butchers-ledger/internal/storage/excel"
	"butchers-ledger/internal/storage/sheets"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	orderTable, factorTable, err := openTables(context.Background(), cfg)
	if err != nil {
		log.Error("failed to open ledger", slog.String("backend", cfg.Ledger.Backend), slog.String("error", err.Error()))
		os.Exit(1)
	}

	orders := ledger.New(orderTable, log.With(slog.String("component", "ledger")))
	products := catalog.NewFile(cfg.CatalogPath)
	aggregateService := aggregate.NewService(
		orders,
		factors.NewSource(factorTable),
		products,
		log.With(slog.String("component", "aggregate")),
	)
	genService := generate_excel.NewGenerateService(aggregateService)

	// общий замок для запросов и выгрузки по расписанию
	var ledgerLock sync.Mutex

	sched := scheduler.New(genService, cfg.Report.Dir, cfg.Report.CronSchedule, &ledgerLock, log.With(slog.String("component", "scheduler")))
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(log, &ledgerLock, orders, products, aggregateService, genService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("backend", cfg.Ledger.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

// openTables возвращает таблицу заказов и таблицу коэффициентов.
func openTables(ctx context.Context, cfg *config.Config) (storage.Table, storage.Table, error) {
	switch cfg.Ledger.Backend {
	case config.BackendSheets:
		var opts []option.ClientOption
		if cfg.Sheets.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Sheets.CredentialsPath))
		}

		orderTable, err := sheets.New(ctx, cfg.Sheets.SpreadsheetID, cfg.Ledger.OrdersSheet, cfg.Ledger.Layout, opts...)
		if err != nil {
			return nil, nil, err
		}
		factorTable, err := sheets.New(ctx, cfg.Sheets.SpreadsheetID, cfg.Ledger.FactorsSheet, cfg.Ledger.Layout, opts...)
		if err != nil {
			return nil, nil, err
		}
		return orderTable, factorTable, nil
	case config.BackendXLSX:
		return excel.New(cfg.Ledger.OrdersPath, cfg.Ledger.OrdersSheet, cfg.Ledger.Layout),
			excel.New(cfg.Ledger.FactorsPath, cfg.Ledger.FactorsSheet, cfg.Ledger.Layout),
			nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Ledger.Backend)
	}
}

type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	// всегда пишем в stdout
	if h.coreHandler.Enabled(ctx, r.Level) {
		if err = h.coreHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	// ошибки дублируем в файл, сбой записи в файл не ломает основной лог
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case envLocal:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		slog.Warn("cannot open error log file", "error", err)
		return slog.New(coreHandler)
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError})

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: errorHandler,
	})
}
