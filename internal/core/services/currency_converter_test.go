package services_test

import (
	"testing"
	"time"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/NotaSpese/expense_report_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testRates() domain.RateTable {
	return domain.RateTable{
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromFloat(1.08),
			"GBP": decimal.NewFromFloat(0.85),
		},
		RefreshedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestConvertAmount_SameCurrencyKeepsFullPrecision(t *testing.T) {
	amount := decimal.RequireFromString("95.5555")
	got := services.ConvertAmount(amount, "EUR", "EUR", testRates())
	assert.True(t, amount.Equal(got), "identity conversion must not round")

	got = services.ConvertAmount(amount, "USD", "USD", testRates())
	assert.True(t, amount.Equal(got))
}

func TestConvertAmount_TwoStepThroughBase(t *testing.T) {
	rates := testRates()

	// 100 USD -> EUR: 100 / 1.08 = 92.5925... -> 92.59
	got := services.ConvertAmount(decimal.NewFromInt(100), "USD", "EUR", rates)
	assert.Equal(t, "92.59", got.StringFixed(2))

	// 100 EUR -> USD: 100 * 1.08 = 108.00
	got = services.ConvertAmount(decimal.NewFromInt(100), "EUR", "USD", rates)
	assert.Equal(t, "108.00", got.StringFixed(2))

	// 50 USD -> GBP: 50 / 1.08 * 0.85 = 39.3518... -> 39.35
	got = services.ConvertAmount(decimal.NewFromInt(50), "USD", "GBP", rates)
	assert.Equal(t, "39.35", got.StringFixed(2))
}

func TestConvertAmount_RoundsHalfUp(t *testing.T) {
	rates := domain.RateTable{Rates: map[string]decimal.Decimal{
		"XTS": decimal.NewFromInt(2),
	}}
	// 5.345 EUR -> XTS: 5.345 * 2 = 10.69 exactly; 5.3475 * 2 = 10.695 -> 10.70
	got := services.ConvertAmount(decimal.RequireFromString("5.3475"), "EUR", "XTS", rates)
	assert.Equal(t, "10.70", got.StringFixed(2))
}

func TestConvertAmount_UnknownCurrencyFallsBackToIdentityRate(t *testing.T) {
	rates := testRates()
	// JPY is not in the table, so its rate is treated as 1.
	got := services.ConvertAmount(decimal.NewFromInt(100), "JPY", "EUR", rates)
	assert.Equal(t, "100.00", got.StringFixed(2))
}

func TestConvertAmount_RoundTripDriftBounded(t *testing.T) {
	rates := testRates()
	amounts := []string{"0.01", "1.00", "33.33", "99.99", "1234.56"}
	pairs := [][2]string{{"EUR", "USD"}, {"USD", "GBP"}, {"GBP", "EUR"}}

	for _, a := range amounts {
		for _, pair := range pairs {
			amount := decimal.RequireFromString(a)
			there := services.ConvertAmount(amount, pair[0], pair[1], rates)
			back := services.ConvertAmount(there, pair[1], pair[0], rates)
			drift := back.Sub(amount).Abs()
			assert.True(t, drift.LessThanOrEqual(decimal.RequireFromString("0.02")),
				"%s %s->%s->%s drifted by %s", a, pair[0], pair[1], pair[0], drift)
		}
	}
}

func TestComputeDisplayRate(t *testing.T) {
	rates := testRates()

	// USD -> EUR: 1 / 1.08 = 0.9259...
	assert.Equal(t, "0.9259", services.ComputeDisplayRate("USD", "EUR", rates).StringFixed(4))
	// EUR -> USD
	assert.Equal(t, "1.0800", services.ComputeDisplayRate("EUR", "USD", rates).StringFixed(4))
	// USD -> GBP: 0.85 / 1.08 = 0.7870...
	assert.Equal(t, "0.7870", services.ComputeDisplayRate("USD", "GBP", rates).StringFixed(4))
	// Same currency
	assert.Equal(t, "1.0000", services.ComputeDisplayRate("USD", "USD", rates).StringFixed(4))
}
