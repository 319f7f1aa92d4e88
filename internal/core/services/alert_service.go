package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/middleware"
	"github.com/finovabs/backoffice_app/internal/utils/duedate"
)

// systemActor is the audit identity stamped on rows written by the scan
// rather than by a user.
const systemActor = "system"

// alertService derives alert type and severity from due-date proximity and
// maintains the one-alert-per-obligation invariant.
type alertService struct {
	alertRepo portsrepo.AlertRepositoryFacade
	notifier  portssvc.NotifierSvcFacade
}

// NewAlertService creates a new AlertService.
func NewAlertService(alertRepo portsrepo.AlertRepositoryFacade, notifier portssvc.NotifierSvcFacade) portssvc.AlertSvcFacade {
	return &alertService{
		alertRepo: alertRepo,
		notifier:  notifier,
	}
}

var _ portssvc.AlertSvcFacade = (*alertService)(nil)

// EvaluateObligation applies the trigger policy to one obligation for the
// given day. The alert row is upserted in place (create on first trigger,
// update on every later one), while the notification log gets a fresh entry
// on every trigger day.
func (s *alertService) EvaluateObligation(ctx context.Context, obligation domain.Obligation, today time.Time) (domain.AlertOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if obligation.DueDate == nil {
		// An open obligation without a due date would mean approval skipped
		// the due-date computation. Skip instead of guessing.
		logger.Warn("Open obligation has no due date, skipping", slog.String("obligation_id", obligation.ObligationID))
		return domain.AlertOutcomeNone, nil
	}

	daysUntilDue := duedate.DaysUntil(*obligation.DueDate, today)
	alertType, triggered := domain.AlertTypeForDays(daysUntilDue)
	if !triggered {
		return domain.AlertOutcomeNone, nil
	}
	severity := domain.SeverityForDays(daysUntilDue)

	now := time.Now().UTC()
	outcome := domain.AlertOutcomeNone
	var alert domain.Alert

	if obligation.AlertID != nil {
		existing, err := s.alertRepo.FindAlertByObligationID(ctx, obligation.ObligationID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return domain.AlertOutcomeNone, fmt.Errorf("failed to load alert for obligation %s: %w", obligation.ObligationID, err)
		}
		if existing != nil {
			alert = *existing
			alert.Type = alertType
			alert.Severity = severity
			alert.DaysUntilDue = daysUntilDue
			alert.TriggeredAt = now
			alert.LastUpdatedAt = now
			alert.LastUpdatedBy = systemActor
			if err := s.alertRepo.UpdateAlert(ctx, alert); err != nil {
				return domain.AlertOutcomeNone, fmt.Errorf("failed to update alert for obligation %s: %w", obligation.ObligationID, err)
			}
			outcome = domain.AlertOutcomeUpdated
		}
	}

	if outcome == domain.AlertOutcomeNone {
		alert = domain.Alert{
			AlertID:      uuid.NewString(),
			ObligationID: obligation.ObligationID,
			Type:         alertType,
			Severity:     severity,
			DaysUntilDue: daysUntilDue,
			TriggeredAt:  now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     systemActor,
				LastUpdatedAt: now,
				LastUpdatedBy: systemActor,
			},
		}
		if err := s.alertRepo.CreateAlert(ctx, alert); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				// The obligation left the open status between the scan's
				// read and this write (e.g. a concurrent payment). Nothing
				// to alert on anymore.
				logger.Info("Obligation no longer open, alert skipped", slog.String("obligation_id", obligation.ObligationID))
				return domain.AlertOutcomeNone, nil
			}
			return domain.AlertOutcomeNone, fmt.Errorf("failed to create alert for obligation %s: %w", obligation.ObligationID, err)
		}
		outcome = domain.AlertOutcomeCreated
	}

	logger.Info("Alert raised",
		slog.String("obligation_id", obligation.ObligationID),
		slog.String("alert_type", string(alertType)),
		slog.String("severity", string(severity)),
		slog.Int("days_until_due", daysUntilDue),
	)

	if err := s.notifier.NotifyAlert(ctx, obligation, alert); err != nil {
		return outcome, fmt.Errorf("alert stored but notification failed for obligation %s: %w", obligation.ObligationID, err)
	}
	return outcome, nil
}

// RemoveAlertForObligation deletes the obligation's alert and clears its
// reference. A missing alert is a no-op.
func (s *alertService) RemoveAlertForObligation(ctx context.Context, obligationID string) error {
	if err := s.alertRepo.DeleteAlertByObligationID(ctx, obligationID); err != nil {
		return fmt.Errorf("failed to remove alert for obligation %s: %w", obligationID, err)
	}
	return nil
}
