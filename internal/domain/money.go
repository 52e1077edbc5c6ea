package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	// TaxRate is applied to every order subtotal.
	TaxRate = decimal.RequireFromString("0.08")

	// MaxAmount is the largest value a NUMERIC(10,2) column holds.
	MaxAmount = decimal.RequireFromString("99999999.99")

	taxMultiplier = decimal.NewFromInt(1).Add(TaxRate)
)

// ParsePrice parses a non-negative amount no larger than MaxAmount. A leading
// currency sign is accepted.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, NewValidationError("Invalid price %q", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, NewValidationError("Invalid price %q", raw)
	}
	if price.Round(2).GreaterThan(MaxAmount) {
		return decimal.Zero, NewValidationError("Price %q exceeds the maximum amount", raw)
	}
	return price, nil
}

// IsWholeCents reports whether amount has no fraction below one cent.
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}
