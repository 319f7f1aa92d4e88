package duedate

import (
	"math"
	"time"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// The organization disburses and collects only on the 5th and the 20th of a
// month. ComputeDueDate adds the credit days encoded by the payment terms to
// the transaction date and snaps the result forward to the nearest such day.

// disbursementDays are the only calendar days an obligation can fall due on.
var disbursementDays = [2]int{5, 20}

// ComputeDueDate returns the due date for a transaction under the given
// payment terms, normalized to midnight. A base date landing exactly on the
// 5th or 20th is kept as is; anything else moves forward, rolling into the
// following month when the base date is past the 20th.
func ComputeDueDate(transactionDate time.Time, terms domain.PaymentTerms) time.Time {
	base := Midnight(transactionDate).AddDate(0, 0, terms.CreditDays())

	// Candidates in order: 5th and 20th of the base month, then 5th and
	// 20th of the following month. The first candidate on or after the
	// base date wins.
	for monthOffset := 0; monthOffset <= 1; monthOffset++ {
		for _, day := range disbursementDays {
			candidate := time.Date(base.Year(), base.Month()+time.Month(monthOffset), day, 0, 0, 0, 0, base.Location())
			if !candidate.Before(base) {
				return candidate
			}
		}
	}

	// Unreachable: the 5th of the following month always covers any base
	// date past the 20th.
	return base
}

// Midnight drops the time component of t, keeping its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil counts whole calendar days from today until due, both normalized
// to midnight. Negative values mean the due date has passed. Rounding absorbs
// DST transitions that make a calendar day 23 or 25 hours long.
func DaysUntil(due time.Time, today time.Time) int {
	diff := Midnight(due).Sub(Midnight(today))
	return int(math.Round(diff.Hours() / 24))
}
