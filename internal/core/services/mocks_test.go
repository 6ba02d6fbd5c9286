package services_test

import (
	"context"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockReportRepository is a testify mock for the report repository port.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report domain.ExpenseReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.ExpenseReport, error) {
	args := m.Called(ctx, reportID)
	if report, ok := args.Get(0).(*domain.ExpenseReport); ok {
		return report, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) ListReportsByUser(ctx context.Context, userID string) ([]domain.ExpenseReport, error) {
	args := m.Called(ctx, userID)
	if reports, ok := args.Get(0).([]domain.ExpenseReport); ok {
		return reports, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) SaveExpenseLine(ctx context.Context, line domain.ExpenseLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockReportRepository) FindExpenseLinesByReportID(ctx context.Context, reportID string) ([]domain.ExpenseLine, error) {
	args := m.Called(ctx, reportID)
	if lines, ok := args.Get(0).([]domain.ExpenseLine); ok {
		return lines, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) DeleteExpenseLine(ctx context.Context, reportID, expenseID string) error {
	args := m.Called(ctx, reportID, expenseID)
	return args.Error(0)
}

// MockRateRepository is a testify mock for the rate repository port.
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if rates, ok := args.Get(0).([]domain.ExchangeRate); ok {
		return rates, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRateService is a testify mock for the rate service facade.
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) UpsertRate(ctx context.Context, currencyCode string, rate decimal.Decimal, updaterUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, rate, updaterUserID)
	if stored, ok := args.Get(0).(*domain.ExchangeRate); ok {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRateService) CurrentRateTable(ctx context.Context) (domain.RateTable, error) {
	args := m.Called(ctx)
	if table, ok := args.Get(0).(domain.RateTable); ok {
		return table, args.Error(1)
	}
	return domain.RateTable{}, args.Error(1)
}
