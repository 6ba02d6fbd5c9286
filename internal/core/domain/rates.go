package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the reference currency against which all rates are
// expressed. Its own rate is always 1.
const BaseCurrency = "EUR"

// ExchangeRate is one stored rate: the value of one unit of BaseCurrency in
// CurrencyCode.
type ExchangeRate struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	AuditFields
}

// RateTable maps currency codes to their value relative to BaseCurrency.
// Static marks the built-in default table used when no rates were ever
// loaded into the store; the export banner reports this instead of a
// refresh timestamp.
type RateTable struct {
	Rates       map[string]decimal.Decimal
	RefreshedAt time.Time
	Static      bool
}

// Rate returns the stored rate for a currency code. BaseCurrency and any
// code absent from the table resolve to 1; the identity fallback for
// unknown codes silently mis-converts and is reported upstream by the rate
// service, not here.
func (t RateTable) Rate(code string) decimal.Decimal {
	if code == BaseCurrency {
		return decimal.NewFromInt(1)
	}
	if r, ok := t.Rates[code]; ok && !r.IsZero() {
		return r
	}
	return decimal.NewFromInt(1)
}

// Has reports whether the table carries an explicit entry for the code.
func (t RateTable) Has(code string) bool {
	if code == BaseCurrency {
		return true
	}
	_, ok := t.Rates[code]
	return ok
}

// DefaultRateTable returns the static fallback table used when the rate
// store is empty.
func DefaultRateTable() RateTable {
	return RateTable{
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromFloat(1.08),
			"GBP": decimal.NewFromFloat(0.85),
			"CHF": decimal.NewFromFloat(0.94),
		},
		Static: true,
	}
}
