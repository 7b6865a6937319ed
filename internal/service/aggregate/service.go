package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"butchers-ledger/internal/factors"
	"butchers-ledger/internal/storage"
)

type OrderLoader interface {
	LoadAll(ctx context.Context, catalog []storage.ProductRef) ([]storage.OrderRecord, error)
}

type FactorLoader interface {
	Load(ctx context.Context) (factors.Table, error)
}

type Catalog interface {
	Products(ctx context.Context) ([]storage.ProductRef, error)
}

type Report struct {
	Orders       int               `json:"orders"`
	Summary      []SummaryLine     `json:"summary"`
	Requirements []RequirementLine `json:"requirements"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

type Service struct {
	orders  OrderLoader
	factors FactorLoader
	catalog Catalog
	log     *slog.Logger
	now     func() time.Time
}

func NewService(orders OrderLoader, factors FactorLoader, catalog Catalog, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		orders:  orders,
		factors: factors,
		catalog: catalog,
		log:     log,
		now:     time.Now,
	}
}

// Report runs one aggregation pass. The order ledger and the factor table
// are separate resources and are read concurrently. A missing factor table
// yields a report without requirements.
func (s *Service) Report(ctx context.Context) (Report, error) {
	const op = "service.aggregate.Report"

	catalog, err := s.catalog.Products(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%s: catalog: %w", op, err)
	}

	var (
		orders []storage.OrderRecord
		table  factors.Table
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.LoadAll(gCtx, catalog)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		table, err = s.factors.Load(gCtx)
		if errors.Is(err, storage.ErrEmptyTable) {
			s.log.Warn("conversion factors are empty, requirements skipped", slog.String("error", err.Error()))
			table, err = factors.Table{}, nil
		}
		if err != nil {
			return fmt.Errorf("factors: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("%s: %w", op, err)
	}

	active := 0
	for _, o := range orders {
		if !o.IsPlaceholder() {
			active++
		}
	}

	summary := SummarizeProducts(orders)
	req := ComputeRequirements(summary, table)

	s.log.Debug("aggregation done",
		slog.Int("orders", active),
		slog.Int("buckets", len(summary)),
		slog.Int("meats", len(req)),
	)

	return Report{
		Orders:       active,
		Summary:      SummaryLines(summary, catalog),
		Requirements: RequirementLines(req),
		GeneratedAt:  s.now(),
	}, nil
}
