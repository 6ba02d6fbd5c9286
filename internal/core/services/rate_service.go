package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NotaSpese/expense_report_app/internal/apperrors"
	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	portsrepo "github.com/NotaSpese/expense_report_app/internal/core/ports/repositories"
	portssvc "github.com/NotaSpese/expense_report_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// rateService implements the RateSvcFacade interface
type rateService struct {
	BaseService
	rateRepo portsrepo.RateRepository
}

// NewRateService creates a new rate service.
func NewRateService(rateRepo portsrepo.RateRepository) portssvc.RateSvcFacade {
	return &rateService{rateRepo: rateRepo}
}

// Ensure rateService implements the RateSvcFacade interface
var _ portssvc.RateSvcFacade = (*rateService)(nil)

// UpsertRate stores the value of one base currency unit in the given currency.
func (s *rateService) UpsertRate(ctx context.Context, currencyCode string, rate decimal.Decimal, updaterUserID string) (*domain.ExchangeRate, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if currencyCode == domain.BaseCurrency {
		return nil, fmt.Errorf("%w: the base currency rate is fixed at 1", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	stored := domain.ExchangeRate{
		CurrencyCode: currencyCode,
		Rate:         rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}
	if err := s.rateRepo.UpsertRate(ctx, stored); err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate", slog.String("currency", currencyCode))
		return nil, fmt.Errorf("failed to upsert exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate upserted",
		slog.String("currency", currencyCode),
		slog.Any("rate", rate))
	return &stored, nil
}

// CurrentRateTable assembles the stored rates into a single table. An empty
// store yields the static default table, and exports state so in their
// banner row.
func (s *rateService) CurrentRateTable(ctx context.Context) (domain.RateTable, error) {
	stored, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if len(stored) == 0 {
		s.LogWarn(ctx, "No exchange rates stored, falling back to static defaults")
		return domain.DefaultRateTable(), nil
	}

	table := domain.RateTable{Rates: make(map[string]decimal.Decimal, len(stored))}
	for _, rate := range stored {
		table.Rates[rate.CurrencyCode] = rate.Rate
		if rate.LastUpdatedAt.After(table.RefreshedAt) {
			table.RefreshedAt = rate.LastUpdatedAt
		}
	}
	return table, nil
}
