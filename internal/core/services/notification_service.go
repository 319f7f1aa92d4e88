package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finovabs/backoffice_app/internal/core/domain"
	portsrepo "github.com/finovabs/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/middleware"
	"github.com/finovabs/backoffice_app/internal/utils"
)

// notificationService renders alert events into durable messages for the
// responsible user: the branch manager where assigned, otherwise a
// configured default user.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	obligationRepo   portsrepo.ObligationReader
	orgRepo          portsrepo.OrgRepositoryFacade
	defaultUserID    string
}

// NewNotificationService creates a new NotificationService. defaultUserID is
// the org-wide fallback recipient for branches without a manager.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, obligationRepo portsrepo.ObligationReader, orgRepo portsrepo.OrgRepositoryFacade, defaultUserID string) portssvc.NotifierSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		obligationRepo:   obligationRepo,
		orgRepo:          orgRepo,
		defaultUserID:    defaultUserID,
	}
}

var _ portssvc.NotifierSvcFacade = (*notificationService)(nil)

// NotifyAlert appends a notification describing the alert event. Counterparty
// and branch lookups degrade gracefully: a missing name never blocks the
// notification itself.
func (s *notificationService) NotifyAlert(ctx context.Context, obligation domain.Obligation, alert domain.Alert) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.obligationRepo.FindRequestByObligationID(ctx, obligation.ObligationID)
	if err != nil {
		return fmt.Errorf("failed to load request for obligation %s: %w", obligation.ObligationID, err)
	}

	counterparty := s.counterpartyName(ctx, request)
	recipient := s.resolveRecipient(ctx, request.BranchID)
	title, message := renderAlertText(obligation, *request, alert, counterparty)

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         recipient,
		Title:          title,
		Message:        message,
		Category:       string(alert.Type),
		IsRead:         false,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to save notification for obligation %s: %w", obligation.ObligationID, err)
	}

	logger.Info("Notification dispatched",
		slog.String("obligation_id", obligation.ObligationID),
		slog.String("recipient", recipient),
		slog.String("category", notification.Category),
	)
	return nil
}

// counterpartyName resolves the client or supplier name for notification text.
func (s *notificationService) counterpartyName(ctx context.Context, request *domain.Request) string {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch request.Kind {
	case domain.RequestKindSale:
		client, err := s.orgRepo.FindClientByID(ctx, request.CounterpartyID)
		if err == nil {
			return client.Name
		}
		logger.Warn("Client lookup failed for notification", slog.String("client_id", request.CounterpartyID), slog.String("error", err.Error()))
	case domain.RequestKindPayment:
		supplier, err := s.orgRepo.FindSupplierByID(ctx, request.CounterpartyID)
		if err == nil {
			return supplier.Name
		}
		logger.Warn("Supplier lookup failed for notification", slog.String("supplier_id", request.CounterpartyID), slog.String("error", err.Error()))
	}
	return request.CounterpartyID
}

// resolveRecipient returns the branch manager's user id, or the configured
// default user when the branch has no manager assigned.
func (s *notificationService) resolveRecipient(ctx context.Context, branchID string) string {
	logger := middleware.GetLoggerFromCtx(ctx)

	branch, err := s.orgRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		logger.Warn("Branch lookup failed, using default recipient", slog.String("branch_id", branchID), slog.String("error", err.Error()))
		return s.defaultUserID
	}
	if branch.ManagerUserID == nil || *branch.ManagerUserID == "" {
		return s.defaultUserID
	}
	return *branch.ManagerUserID
}

// renderAlertText builds the human-readable title and message for one alert
// event.
func renderAlertText(obligation domain.Obligation, request domain.Request, alert domain.Alert, counterparty string) (string, string) {
	amount := utils.FormatAmount(obligation.Amount)
	var direction string
	if request.Kind == domain.RequestKindSale {
		direction = "owed by"
	} else {
		direction = "owed to"
	}

	var dueDate string
	if obligation.DueDate != nil {
		dueDate = obligation.DueDate.Format("2006-01-02")
	}

	switch alert.Type {
	case domain.AlertUpcomingPayment:
		return "Upcoming payment",
			fmt.Sprintf("%s %s %s is due on %s (in %d days).", amount, direction, counterparty, dueDate, alert.DaysUntilDue)
	case domain.AlertPaymentDueToday:
		return "Payment due today",
			fmt.Sprintf("%s %s %s is due today (%s).", amount, direction, counterparty, dueDate)
	case domain.AlertPaymentOverdue:
		return "Payment overdue",
			fmt.Sprintf("%s %s %s was due on %s and is %d days overdue.", amount, direction, counterparty, dueDate, -alert.DaysUntilDue)
	default:
		return "Payment alert",
			fmt.Sprintf("%s %s %s is due on %s.", amount, direction, counterparty, dueDate)
	}
}

// ListNotifications returns a page of the user's notifications, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.notificationRepo.ListNotificationsByUser(ctx, userID, limit, offset)
}

// MarkRead flips the read flag on one of the user's notifications.
func (s *notificationService) MarkRead(ctx context.Context, notificationID string, userID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID)
}
