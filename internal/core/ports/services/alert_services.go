package services

import (
	"context"
	"time"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// AlertSvcFacade owns the alert lifecycle for obligations.
type AlertSvcFacade interface {
	// EvaluateObligation applies the trigger policy to one open obligation
	// for the given day. On a trigger day it upserts the obligation's single
	// alert and dispatches a notification; on quiet days it does nothing and
	// reports AlertOutcomeNone.
	EvaluateObligation(ctx context.Context, obligation domain.Obligation, today time.Time) (domain.AlertOutcome, error)

	// RemoveAlertForObligation deletes the obligation's alert and clears its
	// reference. Idempotent.
	RemoveAlertForObligation(ctx context.Context, obligationID string) error
}
