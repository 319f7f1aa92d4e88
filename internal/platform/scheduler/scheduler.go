package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/core/services"
	"github.com/finovabs/backoffice_app/internal/middleware"
)

// ScanScheduler runs the daily obligation sweep on a cron schedule.
type ScanScheduler struct {
	cronEngine *cron.Cron
	monitor    portssvc.MonitorSvcFacade
	logger     *slog.Logger
	cronSpec   string
}

func NewScanScheduler(monitor portssvc.MonitorSvcFacade, logger *slog.Logger, cronSpec string) *ScanScheduler {
	return &ScanScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		monitor:    monitor,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

// Start registers the sweep job and starts the cron engine. Returns an error
// if the configured cron expression does not parse.
func (s *ScanScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, s.runScan)
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Info("Scan scheduler started", slog.String("cron", s.cronSpec))
	return nil
}

func (s *ScanScheduler) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	jobLogger := s.logger.With(slog.String("job", "daily_scan"))
	ctx = middleware.ContextWithLogger(ctx, jobLogger)

	jobLogger.Info("Scheduled obligation scan starting")

	summary, err := s.monitor.RunScan(ctx)
	if err != nil {
		if errors.Is(err, services.ErrScanAlreadyRunning) {
			jobLogger.Warn("Scheduled scan skipped, another scan is in progress")
			return
		}
		jobLogger.Error("Scheduled obligation scan failed", slog.String("error", err.Error()))
		return
	}

	jobLogger.Info("Scheduled obligation scan finished",
		slog.Int("transactions_checked", summary.TransactionsChecked),
		slog.Int("alerts_created", summary.AlertsCreated),
		slog.Int("alerts_updated", summary.AlertsUpdated),
	)
}

// Stop halts the cron engine and waits for any running job to finish.
func (s *ScanScheduler) Stop() {
	s.logger.Info("Stopping scan scheduler")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Scan scheduler stopped")
}
