package domain

import "time"

// AlertType classifies an alert by due-date proximity.
type AlertType string

const (
	AlertUpcomingPayment AlertType = "upcoming_payment"
	AlertPaymentDueToday AlertType = "payment_due_today"
	AlertPaymentOverdue  AlertType = "payment_overdue"
)

// AlertSeverity grades how urgent an alert is. It is a separate axis from
// AlertType: an overdue alert climbs the ladder the longer it stays unpaid.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is a derived signal about one obligation's due-date proximity.
// There is at most one alert per obligation at any time; re-evaluation
// updates the row in place instead of creating a duplicate.
type Alert struct {
	AlertID      string        `json:"alertID"`      // Primary Key (UUID)
	ObligationID string        `json:"obligationID"` // FK -> Obligation, unique
	Type         AlertType     `json:"type"`
	Severity     AlertSeverity `json:"severity"`
	DaysUntilDue int           `json:"daysUntilDue"` // As of the last evaluation
	TriggeredAt  time.Time     `json:"triggeredAt"`  // Refreshed on every trigger day
	AuditFields
}

// AlertTypeForDays applies the trigger policy: an alert fires only when the
// obligation is exactly 7 days out, due today, or overdue. Overdue
// obligations trigger every day they remain open; all other distances are
// quiet days and return false.
func AlertTypeForDays(daysUntilDue int) (AlertType, bool) {
	switch {
	case daysUntilDue == 7:
		return AlertUpcomingPayment, true
	case daysUntilDue == 0:
		return AlertPaymentDueToday, true
	case daysUntilDue < 0:
		return AlertPaymentOverdue, true
	default:
		return "", false
	}
}

// SeverityForDays grades daysUntilDue on the severity ladder. Values above 7
// never reach this function because the trigger policy filters them out first.
func SeverityForDays(daysUntilDue int) AlertSeverity {
	switch {
	case daysUntilDue < -30:
		return SeverityCritical
	case daysUntilDue < -7:
		return SeverityHigh
	case daysUntilDue <= 0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// AlertOutcome reports what a single evaluation did to an obligation's alert.
type AlertOutcome int

const (
	AlertOutcomeNone AlertOutcome = iota
	AlertOutcomeCreated
	AlertOutcomeUpdated
)

// ScanSummary aggregates one monitor sweep over all open obligations. It
// feeds both the scheduled run's log line and the manual run's API response.
type ScanSummary struct {
	TransactionsChecked int `json:"transactionsChecked"`
	AlertsCreated       int `json:"alertsCreated"`
	AlertsUpdated       int `json:"alertsUpdated"`
}
