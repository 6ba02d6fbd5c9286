package services

import (
	"fmt"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Expenses"

// exportHeader lists the 10 fixed columns of the export, in order.
var exportHeader = []string{
	"Date",
	"Expense Type",
	"Description",
	"Company",
	"Currency of Expense Line",
	"Total of Expense Line",
	"Exchange Rate",
	"Selected Currency",
	"Total in Selected Currency",
	"KM",
}

// SpreadsheetBuilder assembles the xlsx export document for a set of
// expense reports.
type SpreadsheetBuilder struct {
	companyName string
}

// NewSpreadsheetBuilder creates a SpreadsheetBuilder. companyName fills the
// Company column of every data row.
func NewSpreadsheetBuilder(companyName string) *SpreadsheetBuilder {
	return &SpreadsheetBuilder{companyName: companyName}
}

// Build renders the expense lines of the requested reports into a single
// workbook: one banner row stating rate freshness, one header row, one row
// per line sorted by date ascending, and a bold TOTAL row.
//
// The total is the sum of the per-line converted amounts as displayed, each
// already rounded to 2 decimals. It may differ by a cent from a
// full-precision summation; that is the documented behavior, not a defect.
func (b *SpreadsheetBuilder) Build(reportIDs []string, targetCurrency string, expensesByReport map[string][]domain.ExpenseLine, rates domain.RateTable) ([]byte, error) {
	lines := flattenAndSort(reportIDs, expensesByReport)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name export sheet: %w", err)
	}

	var cellErr error
	setCell := func(col, row int, value any) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err == nil {
			err = f.SetCellValue(exportSheetName, cell, value)
		}
		if err != nil && cellErr == nil {
			cellErr = err
		}
	}

	// Banner row spanning all 10 columns.
	if err := f.MergeCell(exportSheetName, "A1", "J1"); err != nil {
		return nil, fmt.Errorf("failed to merge banner row: %w", err)
	}
	setCell(1, 1, rateBanner(rates))

	for i, title := range exportHeader {
		setCell(i+1, 2, title)
	}

	total := decimal.Zero
	row := 3
	for _, el := range lines {
		line := el.Line
		converted := ConvertAmount(line.Amount, line.Currency, targetCurrency, rates)
		total = total.Add(converted.Round(2))

		setCell(1, row, line.Date.Format("01/02/2006"))
		setCell(2, row, string(line.Type))
		setCell(3, row, FormatDescription(string(line.Type), line.Description, line.Metadata))
		setCell(4, row, b.companyName)
		setCell(5, row, line.Currency)
		setCell(6, row, line.Amount.InexactFloat64())
		setCell(7, row, ComputeDisplayRate(line.Currency, targetCurrency, rates).InexactFloat64())
		setCell(8, row, targetCurrency)
		setCell(9, row, converted.InexactFloat64())
		if km := ExtractKilometers(string(line.Type), line.Metadata); km != nil {
			setCell(10, row, km.InexactFloat64())
		}
		row++
	}

	// Totals row: label in the Description column, sum of the displayed
	// converted amounts in the Selected Currency total column.
	setCell(3, row, "TOTAL")
	setCell(9, row, total.InexactFloat64())
	if cellErr != nil {
		return nil, fmt.Errorf("failed to write export cells: %w", cellErr)
	}

	if err := b.applyStyles(f, row); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *SpreadsheetBuilder) applyStyles(f *excelize.File, totalRow int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	rateFmt := "0.0000"
	rateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &rateFmt})
	if err != nil {
		return fmt.Errorf("failed to create rate style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFF2CC"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	if err := f.SetCellStyle(exportSheetName, "A2", "J2", headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}
	if totalRow > 3 {
		lastDataRow := totalRow - 1
		if err := f.SetCellStyle(exportSheetName, "F3", fmt.Sprintf("F%d", lastDataRow), amountStyle); err != nil {
			return fmt.Errorf("failed to style amount column: %w", err)
		}
		if err := f.SetCellStyle(exportSheetName, "G3", fmt.Sprintf("G%d", lastDataRow), rateStyle); err != nil {
			return fmt.Errorf("failed to style rate column: %w", err)
		}
		if err := f.SetCellStyle(exportSheetName, "I3", fmt.Sprintf("I%d", lastDataRow), amountStyle); err != nil {
			return fmt.Errorf("failed to style converted amount column: %w", err)
		}
	}
	if err := f.SetCellStyle(exportSheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("J%d", totalRow), totalStyle); err != nil {
		return fmt.Errorf("failed to style total row: %w", err)
	}
	if err := f.SetColWidth(exportSheetName, "A", "J", 18); err != nil {
		return fmt.Errorf("failed to set column widths: %w", err)
	}
	return nil
}

// rateBanner is the informational first row: either the table's refresh
// timestamp or a notice that the static defaults are in use.
func rateBanner(rates domain.RateTable) string {
	if rates.Static || rates.RefreshedAt.IsZero() {
		return "Default exchange rates in use (no refreshed rates available)"
	}
	return fmt.Sprintf("Exchange rates last updated %s", rates.RefreshedAt.UTC().Format("2006-01-02 15:04 UTC"))
}
