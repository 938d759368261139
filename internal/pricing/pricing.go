package pricing

import (
	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 2 // prices are compared at cent precision

// Beats returns true if price is strictly greater than reference.
// Uses decimal arithmetic with monetaryPrecision so float noise cannot
// let an equal-price bid pass as higher.
func Beats(price, reference float64) bool {
	priceDecimal := decimal.NewFromFloat(price).Round(monetaryPrecision)
	referenceDecimal := decimal.NewFromFloat(reference).Round(monetaryPrecision)

	return priceDecimal.GreaterThan(referenceDecimal)
}

// WithinRange returns true if lower <= price <= upper, bounds inclusive.
func WithinRange(price, lower, upper float64) bool {
	priceDecimal := decimal.NewFromFloat(price).Round(monetaryPrecision)
	lowerDecimal := decimal.NewFromFloat(lower).Round(monetaryPrecision)
	upperDecimal := decimal.NewFromFloat(upper).Round(monetaryPrecision)

	return priceDecimal.GreaterThanOrEqual(lowerDecimal) && priceDecimal.LessThanOrEqual(upperDecimal)
}

// ValidRange returns true if lower and upper form a usable price range.
func ValidRange(lower, upper float64) bool {
	lowerDecimal := decimal.NewFromFloat(lower).Round(monetaryPrecision)
	upperDecimal := decimal.NewFromFloat(upper).Round(monetaryPrecision)

	return !lowerDecimal.IsNegative() && lowerDecimal.LessThanOrEqual(upperDecimal)
}
