package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/NotaSpese/expense_report_app/internal/apperrors"
	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportRepository implements the repositories.ReportRepository interface using pgxpool.
type PgxReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new PgxReportRepository.
func NewReportRepository(db *pgxpool.Pool) *PgxReportRepository {
	return &PgxReportRepository{db: db}
}

// SaveReport inserts a new expense report into the database.
func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.ExpenseReport) error {
	query := `
		INSERT INTO expense_reports (
			report_id, user_id, title, month, year,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		report.ReportID, report.UserID, report.Title, report.Month, report.Year,
		report.CreatedAt, report.CreatedBy, report.LastUpdatedAt, report.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting expense report: %w", err)
	}
	return nil
}

// FindReportByID retrieves a single expense report.
func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.ExpenseReport, error) {
	query := `
		SELECT report_id, user_id, title, month, year,
			created_at, created_by, last_updated_at, last_updated_by
		FROM expense_reports
		WHERE report_id = $1
	`
	report := &domain.ExpenseReport{}
	err := r.db.QueryRow(ctx, query, reportID).Scan(
		&report.ReportID, &report.UserID, &report.Title, &report.Month, &report.Year,
		&report.CreatedAt, &report.CreatedBy, &report.LastUpdatedAt, &report.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding expense report: %w", err)
	}
	return report, nil
}

// ListReportsByUser retrieves all reports owned by a user, newest period first.
func (r *PgxReportRepository) ListReportsByUser(ctx context.Context, userID string) ([]domain.ExpenseReport, error) {
	query := `
		SELECT report_id, user_id, title, month, year,
			created_at, created_by, last_updated_at, last_updated_by
		FROM expense_reports
		WHERE user_id = $1
		ORDER BY year DESC, month DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing expense reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.ExpenseReport
	for rows.Next() {
		var report domain.ExpenseReport
		if err := rows.Scan(
			&report.ReportID, &report.UserID, &report.Title, &report.Month, &report.Year,
			&report.CreatedAt, &report.CreatedBy, &report.LastUpdatedAt, &report.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning expense report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense report rows: %w", err)
	}
	return reports, nil
}

// SaveExpenseLine inserts a new expense line into the database.
func (r *PgxReportRepository) SaveExpenseLine(ctx context.Context, line domain.ExpenseLine) error {
	query := `
		INSERT INTO expense_lines (
			expense_id, report_id, expense_date, expense_type, description,
			amount, currency, metadata, receipt_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	// Metadata is stored as JSONB; pass NULL rather than an empty fragment.
	var metadata any
	if len(line.Metadata) > 0 {
		metadata = []byte(line.Metadata)
	}
	var receiptID any
	if line.ReceiptID != "" {
		receiptID = line.ReceiptID
	}
	_, err := r.db.Exec(ctx, query,
		line.ExpenseID, line.ReportID, line.Date, string(line.Type), line.Description,
		line.Amount, line.Currency, metadata, receiptID,
		line.CreatedAt, line.CreatedBy, line.LastUpdatedAt, line.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error inserting expense line: %w", err)
	}
	return nil
}

// FindExpenseLinesByReportID retrieves the lines of one report in insertion order.
func (r *PgxReportRepository) FindExpenseLinesByReportID(ctx context.Context, reportID string) ([]domain.ExpenseLine, error) {
	query := `
		SELECT expense_id, report_id, expense_date, expense_type, description,
			amount, currency, metadata, receipt_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM expense_lines
		WHERE report_id = $1
		ORDER BY created_at, expense_id
	`
	rows, err := r.db.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("error listing expense lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.ExpenseLine
	for rows.Next() {
		var line domain.ExpenseLine
		var expenseType string
		var metadata []byte
		var receiptID *string
		if err := rows.Scan(
			&line.ExpenseID, &line.ReportID, &line.Date, &expenseType, &line.Description,
			&line.Amount, &line.Currency, &metadata, &receiptID,
			&line.CreatedAt, &line.CreatedBy, &line.LastUpdatedAt, &line.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning expense line row: %w", err)
		}
		line.Type = domain.ExpenseType(expenseType)
		line.Metadata = metadata
		if receiptID != nil {
			line.ReceiptID = *receiptID
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense line rows: %w", err)
	}
	return lines, nil
}

// DeleteExpenseLine removes one expense line from a report.
func (r *PgxReportRepository) DeleteExpenseLine(ctx context.Context, reportID, expenseID string) error {
	query := `DELETE FROM expense_lines WHERE report_id = $1 AND expense_id = $2`
	tag, err := r.db.Exec(ctx, query, reportID, expenseID)
	if err != nil {
		return fmt.Errorf("error deleting expense line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
