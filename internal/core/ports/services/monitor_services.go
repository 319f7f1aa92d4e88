package services

import (
	"context"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// MonitorSvcFacade is the daily due-date sweep over all open obligations.
// The same entry point serves the scheduled 02:00 run and the operator's
// manual "run now" action; concurrent invocations are mutually exclusive.
type MonitorSvcFacade interface {
	RunScan(ctx context.Context) (domain.ScanSummary, error)
}
