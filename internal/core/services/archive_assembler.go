package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	portsrepo "github.com/NotaSpese/expense_report_app/internal/core/ports/repositories"
	"golang.org/x/sync/errgroup"
)

// ArchiveAssembler bundles an export spreadsheet together with the receipt
// images of the exported expense lines into a single zip archive.
type ArchiveAssembler struct {
	BaseService
	builder      *SpreadsheetBuilder
	fetcher      portsrepo.ReceiptFetcher
	fetchTimeout time.Duration
	parallelism  int
}

// NewArchiveAssembler creates an ArchiveAssembler. fetchTimeout bounds each
// individual receipt fetch; parallelism bounds how many fetches run at once.
func NewArchiveAssembler(builder *SpreadsheetBuilder, fetcher portsrepo.ReceiptFetcher, fetchTimeout time.Duration, parallelism int) *ArchiveAssembler {
	if parallelism < 1 {
		parallelism = 1
	}
	return &ArchiveAssembler{
		builder:      builder,
		fetcher:      fetcher,
		fetchTimeout: fetchTimeout,
		parallelism:  parallelism,
	}
}

// fetchedReceipt is one receipt fetch slot. Slots are allocated over the
// date-sorted lines before fetching starts, so concurrent completion order
// never influences archive layout.
type fetchedReceipt struct {
	line    domain.ExpenseLine
	content []byte
	ext     string
	ok      bool
}

// BuildArchive builds the spreadsheet for the requested reports and zips it
// together with every fetchable receipt.
//
// Receipts are fetched with bounded parallelism and a per-fetch timeout.
// A failed fetch is logged and skipped; it neither aborts the archive nor
// consumes a filename index. Entries are named
// Receipt_{NN}_{TYPE}_{date}.{ext} where NN numbers the successfully
// fetched receipts in date order, starting at 01.
func (a *ArchiveAssembler) BuildArchive(ctx context.Context, reportIDs []string, targetCurrency string, expensesByReport map[string][]domain.ExpenseLine, rates domain.RateTable) ([]byte, error) {
	sheet, err := a.builder.Build(reportIDs, targetCurrency, expensesByReport, rates)
	if err != nil {
		return nil, fmt.Errorf("failed to build spreadsheet for archive: %w", err)
	}

	var withReceipts []domain.ExpenseLine
	for _, el := range flattenAndSort(reportIDs, expensesByReport) {
		if el.Line.ReceiptID != "" {
			withReceipts = append(withReceipts, el.Line)
		}
	}

	results := make([]fetchedReceipt, len(withReceipts))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for i, line := range withReceipts {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(groupCtx, a.fetchTimeout)
			defer cancel()

			content, contentType, err := a.fetcher.Fetch(fetchCtx, line.ReceiptID)
			if err != nil {
				// Recoverable per-item: the archive simply carries fewer
				// receipts than receipt-bearing lines.
				a.LogWarn(ctx, "Skipping receipt after failed fetch",
					slog.String("expense_id", line.ExpenseID),
					slog.String("receipt_id", line.ReceiptID),
					slog.String("error", err.Error()))
				return nil
			}
			results[i] = fetchedReceipt{line: line, content: content, ext: receiptExtension(contentType), ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch receipts: %w", err)
	}

	exportDate := time.Now().Format("2006-01-02")
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	w, err := zw.Create(SpreadsheetFilename(targetCurrency, exportDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet archive entry: %w", err)
	}
	if _, err := w.Write(sheet); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet archive entry: %w", err)
	}

	index := 0
	for _, r := range results {
		if !r.ok {
			continue
		}
		index++
		name := fmt.Sprintf("receipts/Receipt_%02d_%s_%s.%s", index, r.line.Type, exportDate, r.ext)
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create receipt archive entry: %w", err)
		}
		if _, err := w.Write(r.content); err != nil {
			return nil, fmt.Errorf("failed to write receipt archive entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// SpreadsheetFilename is the download name of an export spreadsheet.
func SpreadsheetFilename(targetCurrency, isoDate string) string {
	return fmt.Sprintf("Expenses_%s_%s.xlsx", targetCurrency, isoDate)
}

// ArchiveFilename is the download name of an export archive.
func ArchiveFilename(targetCurrency, isoDate string) string {
	return fmt.Sprintf("Expenses_%s_%s.zip", targetCurrency, isoDate)
}

// receiptExtension maps a fetched content type onto a file extension.
// Unrecognized types fall back to jpg.
func receiptExtension(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/png"):
		return "png"
	case strings.HasPrefix(contentType, "application/pdf"):
		return "pdf"
	default:
		return "jpg"
	}
}
