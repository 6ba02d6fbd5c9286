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
)

// exportService implements the ExportSvcFacade interface
type exportService struct {
	BaseService
	reportRepo portsrepo.ReportRepository
	rateSvc    portssvc.RateSvcFacade
	builder    *SpreadsheetBuilder
	assembler  *ArchiveAssembler
}

// NewExportService creates a new export service.
func NewExportService(reportRepo portsrepo.ReportRepository, rateSvc portssvc.RateSvcFacade, builder *SpreadsheetBuilder, assembler *ArchiveAssembler) portssvc.ExportSvcFacade {
	return &exportService{
		reportRepo: reportRepo,
		rateSvc:    rateSvc,
		builder:    builder,
		assembler:  assembler,
	}
}

// Ensure exportService implements the ExportSvcFacade interface
var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportSpreadsheet renders the expense lines of the given reports into an
// xlsx document with amounts converted to targetCurrency.
func (s *exportService) ExportSpreadsheet(ctx context.Context, reportIDs []string, targetCurrency string) ([]byte, string, error) {
	expensesByReport, rates, err := s.collectExportInput(ctx, reportIDs, targetCurrency)
	if err != nil {
		return nil, "", err
	}

	data, err := s.builder.Build(reportIDs, targetCurrency, expensesByReport, rates)
	if err != nil {
		s.LogError(ctx, err, "Failed to build export spreadsheet",
			slog.String("target_currency", targetCurrency))
		return nil, "", fmt.Errorf("failed to build export spreadsheet: %w", err)
	}

	s.LogInfo(ctx, "Export spreadsheet generated",
		slog.Int("report_count", len(reportIDs)),
		slog.String("target_currency", targetCurrency))
	return data, SpreadsheetFilename(targetCurrency, time.Now().Format("2006-01-02")), nil
}

// ExportArchive renders the spreadsheet and bundles it with the fetchable
// receipt images of the exported lines into a zip archive.
func (s *exportService) ExportArchive(ctx context.Context, reportIDs []string, targetCurrency string) ([]byte, string, error) {
	expensesByReport, rates, err := s.collectExportInput(ctx, reportIDs, targetCurrency)
	if err != nil {
		return nil, "", err
	}

	data, err := s.assembler.BuildArchive(ctx, reportIDs, targetCurrency, expensesByReport, rates)
	if err != nil {
		s.LogError(ctx, err, "Failed to build export archive",
			slog.String("target_currency", targetCurrency))
		return nil, "", fmt.Errorf("failed to build export archive: %w", err)
	}

	s.LogInfo(ctx, "Export archive generated",
		slog.Int("report_count", len(reportIDs)),
		slog.String("target_currency", targetCurrency))
	return data, ArchiveFilename(targetCurrency, time.Now().Format("2006-01-02")), nil
}

// collectExportInput loads the expense lines of every requested report and
// the current rate table. A missing report fails the whole request; an
// expense currency missing from the rate table is only logged, since
// conversion falls back to the identity rate.
func (s *exportService) collectExportInput(ctx context.Context, reportIDs []string, targetCurrency string) (map[string][]domain.ExpenseLine, domain.RateTable, error) {
	if len(reportIDs) == 0 {
		return nil, domain.RateTable{}, fmt.Errorf("%w: at least one report id is required", apperrors.ErrValidation)
	}
	if len(targetCurrency) != 3 {
		return nil, domain.RateTable{}, fmt.Errorf("%w: target currency must be a 3-letter code", apperrors.ErrValidation)
	}

	expensesByReport := make(map[string][]domain.ExpenseLine, len(reportIDs))
	for _, reportID := range reportIDs {
		if _, err := s.reportRepo.FindReportByID(ctx, reportID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, domain.RateTable{}, fmt.Errorf("%w: report '%s'", apperrors.ErrNotFound, reportID)
			}
			return nil, domain.RateTable{}, fmt.Errorf("failed to load report '%s': %w", reportID, err)
		}
		lines, err := s.reportRepo.FindExpenseLinesByReportID(ctx, reportID)
		if err != nil {
			return nil, domain.RateTable{}, fmt.Errorf("failed to load expense lines of report '%s': %w", reportID, err)
		}
		expensesByReport[reportID] = lines
	}

	rates, err := s.rateSvc.CurrentRateTable(ctx)
	if err != nil {
		return nil, domain.RateTable{}, fmt.Errorf("failed to load rate table: %w", err)
	}

	if !rates.Has(targetCurrency) {
		s.LogWarn(ctx, "Target currency missing from rate table, identity rate applied",
			slog.String("currency", targetCurrency))
	}
	for reportID, lines := range expensesByReport {
		for _, line := range lines {
			if line.Currency != "" && !rates.Has(line.Currency) {
				s.LogWarn(ctx, "Expense currency missing from rate table, identity rate applied",
					slog.String("report_id", reportID),
					slog.String("expense_id", line.ExpenseID),
					slog.String("currency", line.Currency))
			}
		}
	}

	return expensesByReport, rates, nil
}
