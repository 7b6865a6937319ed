package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type ReportWriter interface {
	WriteFile(ctx context.Context, dir string, now time.Time) (string, error)
}

// Scheduler периодически сохраняет сводный отчет в каталог.
type Scheduler struct {
	cron     *cron.Cron
	reports  ReportWriter
	dir      string
	schedule string
	lock     sync.Locker
	log      *slog.Logger
	now      func() time.Time
}

// New builds a scheduler. lock is held for the whole export so it never
// reads a workbook while a request is saving it; nil means no locking.
func New(reports ReportWriter, dir, schedule string, lock sync.Locker, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if lock == nil {
		lock = noLock{}
	}

	return &Scheduler{
		cron:     cron.New(),
		reports:  reports,
		dir:      dir,
		schedule: schedule,
		lock:     lock,
		log:      log,
		now:      time.Now,
	}
}

// Start registers the export job and starts the cron loop. An empty
// schedule disables the scheduler.
func (s *Scheduler) Start() error {
	const op = "scheduler.Start"

	if s.schedule == "" {
		s.log.Info("report schedule is empty, scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.exportReport); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("starting scheduler", slog.String("schedule", s.schedule), slog.String("dir", s.dir))
	s.cron.Start()
	return nil
}

// Stop waits for a running export to finish.
func (s *Scheduler) Stop() {
	s.log.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) exportReport() {
	s.lock.Lock()
	defer s.lock.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	path, err := s.reports.WriteFile(ctx, s.dir, s.now())
	if err != nil {
		s.log.Error("failed to export report", slog.String("error", err.Error()))
		return
	}

	s.log.Info("report exported", slog.String("path", path))
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
