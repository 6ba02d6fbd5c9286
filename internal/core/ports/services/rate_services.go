package services

import (
	"context"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSvcFacade exposes exchange rate management and the assembled rate
// table consumed by exports.
type RateSvcFacade interface {
	// UpsertRate stores the value of one BaseCurrency unit in the given
	// currency.
	UpsertRate(ctx context.Context, currencyCode string, rate decimal.Decimal, updaterUserID string) (*domain.ExchangeRate, error)

	// CurrentRateTable returns the stored rates as a single table. An empty
	// store yields the static default table.
	CurrentRateTable(ctx context.Context) (domain.RateTable, error)
}
