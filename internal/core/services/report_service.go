package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NotaSpese/expense_report_app/internal/apperrors"
	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	portsrepo "github.com/NotaSpese/expense_report_app/internal/core/ports/repositories"
	portssvc "github.com/NotaSpese/expense_report_app/internal/core/ports/services"
	"github.com/NotaSpese/expense_report_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reportService implements the ReportSvcFacade interface
type reportService struct {
	BaseService
	reportRepo portsrepo.ReportRepository
}

// NewReportService creates a new report service.
func NewReportService(reportRepo portsrepo.ReportRepository) portssvc.ReportSvcFacade {
	return &reportService{reportRepo: reportRepo}
}

// Ensure reportService implements the ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// CreateReport creates a new expense report for the given user.
func (s *reportService) CreateReport(ctx context.Context, req dto.CreateReportRequest, creatorUserID string) (*domain.ExpenseReport, error) {
	now := time.Now()
	report := domain.ExpenseReport{
		ReportID: uuid.NewString(),
		UserID:   creatorUserID,
		Title:    req.Title,
		Month:    req.Month,
		Year:     req.Year,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		s.LogError(ctx, err, "Failed to save report", slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.LogInfo(ctx, "Report created", slog.String("report_id", report.ReportID))
	return &report, nil
}

// GetReport retrieves a report together with its expense lines.
func (s *reportService) GetReport(ctx context.Context, reportID string) (*domain.ExpenseReport, []domain.ExpenseLine, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to get report: %w", err)
	}

	lines, err := s.reportRepo.FindExpenseLinesByReportID(ctx, reportID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get expense lines: %w", err)
	}
	return report, lines, nil
}

// ListReports lists all reports owned by a user.
func (s *reportService) ListReports(ctx context.Context, userID string) ([]domain.ExpenseReport, error) {
	reports, err := s.reportRepo.ListReportsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// AddExpenseLine validates and appends a typed expense line to a report.
// The type token may be canonical or an Italian synonym; it is stored in
// canonical form. Currency defaults to the base currency.
func (s *reportService) AddExpenseLine(ctx context.Context, reportID string, req dto.CreateExpenseLineRequest, creatorUserID string) (*domain.ExpenseLine, error) {
	expenseType, ok := domain.ParseExpenseType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown expense type '%s'", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.reportRepo.FindReportByID(ctx, reportID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load report for expense line: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.BaseCurrency
	}

	now := time.Now()
	line := domain.ExpenseLine{
		ExpenseID:   uuid.NewString(),
		ReportID:    reportID,
		Date:        req.Date,
		Type:        expenseType,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		Metadata:    req.Metadata,
		ReceiptID:   req.ReceiptID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.reportRepo.SaveExpenseLine(ctx, line); err != nil {
		s.LogError(ctx, err, "Failed to save expense line", slog.String("report_id", reportID))
		return nil, fmt.Errorf("failed to add expense line: %w", err)
	}

	s.LogInfo(ctx, "Expense line added",
		slog.String("report_id", reportID),
		slog.String("expense_id", line.ExpenseID),
		slog.String("type", string(line.Type)))
	return &line, nil
}

// DeleteExpenseLine removes one expense line from a report.
func (s *reportService) DeleteExpenseLine(ctx context.Context, reportID, expenseID string) error {
	if err := s.reportRepo.DeleteExpenseLine(ctx, reportID, expenseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete expense line: %w", err)
	}
	s.LogInfo(ctx, "Expense line deleted",
		slog.String("report_id", reportID),
		slog.String("expense_id", expenseID))
	return nil
}
