package dto

import (
	"time"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertRateRequest sets the value of one EUR in the addressed currency.
type UpsertRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// RateResponse is the API representation of a stored exchange rate.
type RateResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	Rate          decimal.Decimal `json:"rate"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToRateResponse maps a domain exchange rate to its API representation.
func ToRateResponse(r *domain.ExchangeRate) RateResponse {
	return RateResponse{
		CurrencyCode:  r.CurrencyCode,
		Rate:          r.Rate,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

// RateTableResponse is the API representation of the assembled rate table.
type RateTableResponse struct {
	Base        string                     `json:"base"`
	Rates       map[string]decimal.Decimal `json:"rates"`
	RefreshedAt *time.Time                 `json:"refreshedAt,omitempty"`
	Static      bool                       `json:"static"`
}

// ToRateTableResponse maps a domain rate table to its API representation.
func ToRateTableResponse(t domain.RateTable) RateTableResponse {
	resp := RateTableResponse{
		Base:   domain.BaseCurrency,
		Rates:  t.Rates,
		Static: t.Static,
	}
	if !t.RefreshedAt.IsZero() {
		refreshedAt := t.RefreshedAt
		resp.RefreshedAt = &refreshedAt
	}
	return resp
}
