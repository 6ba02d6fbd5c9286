package services

import (
	"context"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/NotaSpese/expense_report_app/internal/dto"
)

// ReportSvcFacade exposes expense report and expense line management.
type ReportSvcFacade interface {
	CreateReport(ctx context.Context, req dto.CreateReportRequest, creatorUserID string) (*domain.ExpenseReport, error)
	GetReport(ctx context.Context, reportID string) (*domain.ExpenseReport, []domain.ExpenseLine, error)
	ListReports(ctx context.Context, userID string) ([]domain.ExpenseReport, error)

	AddExpenseLine(ctx context.Context, reportID string, req dto.CreateExpenseLineRequest, creatorUserID string) (*domain.ExpenseLine, error)
	DeleteExpenseLine(ctx context.Context, reportID, expenseID string) error
}
