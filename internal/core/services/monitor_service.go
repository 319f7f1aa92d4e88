package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/middleware"
)

// ErrScanAlreadyRunning is returned when a scan is requested while another
// one is still sweeping. The scheduled run and the operator's manual trigger
// share the same single-flight lock.
var ErrScanAlreadyRunning = errors.New("an obligation scan is already running")

// monitorService sweeps every open obligation once per invocation and hands
// each one to the alert service. It deliberately scans the full open set
// rather than querying an indexed "next trigger date": due dates are
// immutable after approval and the trigger policy fires on exact day
// boundaries, so a simple daily sweep is both correct and cheap at this
// system's volumes.
type monitorService struct {
	obligationRepo portsrepo.ObligationReader
	alertSvc       portssvc.AlertSvcFacade
	now            func() time.Time
	running        sync.Mutex
}

// MonitorOption configures a monitorService.
type MonitorOption func(*monitorService)

// WithClock overrides the monitor's notion of "now". Used in tests.
func WithClock(now func() time.Time) MonitorOption {
	return func(s *monitorService) {
		s.now = now
	}
}

// NewMonitorService creates a new MonitorService.
func NewMonitorService(obligationRepo portsrepo.ObligationReader, alertSvc portssvc.AlertSvcFacade, opts ...MonitorOption) portssvc.MonitorSvcFacade {
	s := &monitorService{
		obligationRepo: obligationRepo,
		alertSvc:       alertSvc,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.MonitorSvcFacade = (*monitorService)(nil)

// RunScan loads all open obligations, evaluates each against the trigger
// policy and returns the aggregate counts. A failing obligation is logged and
// skipped rather than aborting the sweep; it stays open and is retried on the
// next run. Concurrent calls beyond the first fail with ErrScanAlreadyRunning.
func (s *monitorService) RunScan(ctx context.Context) (domain.ScanSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !s.running.TryLock() {
		return domain.ScanSummary{}, ErrScanAlreadyRunning
	}
	defer s.running.Unlock()

	today := s.now()
	obligations, err := s.obligationRepo.ListOpenObligations(ctx)
	if err != nil {
		return domain.ScanSummary{}, err
	}

	var summary domain.ScanSummary
	for _, obligation := range obligations {
		summary.TransactionsChecked++

		outcome, err := s.alertSvc.EvaluateObligation(ctx, obligation, today)
		if err != nil {
			logger.Error("Obligation evaluation failed, continuing scan",
				slog.String("obligation_id", obligation.ObligationID),
				slog.String("error", err.Error()),
			)
			continue
		}
		switch outcome {
		case domain.AlertOutcomeCreated:
			summary.AlertsCreated++
		case domain.AlertOutcomeUpdated:
			summary.AlertsUpdated++
		}
	}

	logger.Info("Obligation scan completed",
		slog.Int("transactions_checked", summary.TransactionsChecked),
		slog.Int("alerts_created", summary.AlertsCreated),
		slog.Int("alerts_updated", summary.AlertsUpdated),
	)
	return summary, nil
}
