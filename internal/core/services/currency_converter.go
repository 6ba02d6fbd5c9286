package services

import (
	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertAmount converts a monetary amount between two ISO currency codes
// through the shared base currency: amount / rates[from] * rates[to].
//
// A same-currency conversion returns the amount unchanged at full precision.
// Any other result is rounded to 2 decimal places, half up. Codes absent
// from the table resolve to rate 1 (see domain.RateTable.Rate).
func ConvertAmount(amount decimal.Decimal, fromCurrency, toCurrency string, rates domain.RateTable) decimal.Decimal {
	if fromCurrency == toCurrency {
		return amount
	}
	baseAmount := amount.Div(rates.Rate(fromCurrency))
	return baseAmount.Mul(rates.Rate(toCurrency)).Round(2)
}

// ComputeDisplayRate returns the effective multiplicative rate between two
// currencies, rates[to] / rates[from], rounded to 4 decimal places.
//
// This value is for display only. The applied conversion uses the two-step
// calculation in ConvertAmount, so the displayed rate and the factor
// actually applied may diverge by floating rounding.
func ComputeDisplayRate(fromCurrency, toCurrency string, rates domain.RateTable) decimal.Decimal {
	return rates.Rate(toCurrency).Div(rates.Rate(fromCurrency)).Round(4)
}
