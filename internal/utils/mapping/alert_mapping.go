package mapping

import (
	"github.com/finovabs/backoffice_app/internal/core/domain"
	"github.com/finovabs/backoffice_app/internal/models"
)

// ToModelAlert converts a domain Alert to a model Alert
func ToModelAlert(d domain.Alert) models.Alert {
	return models.Alert{
		AlertID:      d.AlertID,
		ObligationID: d.ObligationID,
		Type:         string(d.Type),
		Severity:     string(d.Severity),
		DaysUntilDue: d.DaysUntilDue,
		TriggeredAt:  d.TriggeredAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAlert converts a model Alert to a domain Alert
func ToDomainAlert(m models.Alert) domain.Alert {
	return domain.Alert{
		AlertID:      m.AlertID,
		ObligationID: m.ObligationID,
		Type:         domain.AlertType(m.Type),
		Severity:     domain.AlertSeverity(m.Severity),
		DaysUntilDue: m.DaysUntilDue,
		TriggeredAt:  m.TriggeredAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		UserID:         d.UserID,
		Title:          d.Title,
		Message:        d.Message,
		Category:       d.Category,
		IsRead:         d.IsRead,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Title:          m.Title,
		Message:        m.Message,
		Category:       m.Category,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
