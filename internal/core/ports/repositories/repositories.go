package repositories

import (
	"context"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
)

// ReportRepository defines the persistence operations for expense reports
// and their lines.
type ReportRepository interface {
	SaveReport(ctx context.Context, report domain.ExpenseReport) error
	FindReportByID(ctx context.Context, reportID string) (*domain.ExpenseReport, error)
	ListReportsByUser(ctx context.Context, userID string) ([]domain.ExpenseReport, error)

	SaveExpenseLine(ctx context.Context, line domain.ExpenseLine) error
	FindExpenseLinesByReportID(ctx context.Context, reportID string) ([]domain.ExpenseLine, error)
	DeleteExpenseLine(ctx context.Context, reportID, expenseID string) error
}

// RateRepository defines persistence operations for exchange rates.
type RateRepository interface {
	UpsertRate(ctx context.Context, rate domain.ExchangeRate) error
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
