package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount formats a monetary amount for display in notification text.
// Example: amount 12.3456 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
