package domain

import (
	"strconv"
	"strings"
)

// PaymentTerms is the code describing the payment grace period granted to a
// counterparty. The string values are shared with the store and must not change.
type PaymentTerms string

const (
	TermsImmediate PaymentTerms = "immediate"
	TermsCurrent15 PaymentTerms = "current_15"
	TermsCurrent30 PaymentTerms = "current_30"
	TermsCurrent35 PaymentTerms = "current_35"
	TermsCurrent45 PaymentTerms = "current_45"
	TermsCurrent50 PaymentTerms = "current_50"
	TermsCurrent60 PaymentTerms = "current_60"
	TermsCurrent90 PaymentTerms = "current_90"
)

// KnownPaymentTerms lists every code accepted at the API boundary.
var KnownPaymentTerms = []PaymentTerms{
	TermsImmediate,
	TermsCurrent15,
	TermsCurrent30,
	TermsCurrent35,
	TermsCurrent45,
	TermsCurrent50,
	TermsCurrent60,
	TermsCurrent90,
}

// CreditDays maps a payment-terms code to its number of credit days.
// Parsing is deliberately permissive: unknown or malformed codes behave
// like "immediate" (0 days) instead of failing. The stricter rejection of
// bad codes happens at the DTO validation layer, not here.
func (t PaymentTerms) CreditDays() int {
	if rest, ok := strings.CutPrefix(string(t), "current_"); ok {
		if days, err := strconv.Atoi(rest); err == nil && days > 0 {
			return days
		}
	}
	return 0
}

// Known reports whether t is one of the supported payment-terms codes.
func (t PaymentTerms) Known() bool {
	for _, known := range KnownPaymentTerms {
		if t == known {
			return true
		}
	}
	return false
}
