package services

import (
	"sort"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
)

// exportLine is one expense line tagged with its source report. The report
// id is kept for traceability only and never rendered.
type exportLine struct {
	ReportID string
	Line     domain.ExpenseLine
}

// flattenAndSort pools the expense lines of the requested reports into one
// collection ordered by date ascending. Reports are visited in request
// order and the sort is stable, so lines sharing a date keep their input
// order. Lines without a currency are normalized to the base currency.
func flattenAndSort(reportIDs []string, expensesByReport map[string][]domain.ExpenseLine) []exportLine {
	var pooled []exportLine
	for _, reportID := range reportIDs {
		for _, line := range expensesByReport[reportID] {
			if line.Currency == "" {
				line.Currency = domain.BaseCurrency
			}
			pooled = append(pooled, exportLine{ReportID: reportID, Line: line})
		}
	}
	sort.SliceStable(pooled, func(i, j int) bool {
		return pooled[i].Line.Date.Before(pooled[j].Line.Date)
	})
	return pooled
}
