package utils

import (
	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMinorUnits renders an integer minor-unit amount in major units with the
// currency's precision.
// Example: 12345 USD returns "123.45"
// Example: 12345 JPY returns "12345"
// Example: -5 KWD returns "-0.005"
func FormatMinorUnits(amountMinor int64, currency string) string {
	exp := domain.MinorUnitExponent(currency)
	return decimal.New(amountMinor, -exp).StringFixed(exp)
}
