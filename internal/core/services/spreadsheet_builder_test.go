package services_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/NotaSpese/expense_report_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testCompany = "NotaSpese S.r.l."

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func exportFixture() (reportIDs []string, expensesByReport map[string][]domain.ExpenseLine) {
	lunch := domain.ExpenseLine{
		ExpenseID:   "e1",
		Date:        date(2024, 3, 8),
		Type:        domain.TypeLunch,
		Description: "Team lunch",
		Amount:      decimal.NewFromInt(40),
		Currency:    "USD",
		Metadata:    json.RawMessage(`{"customer":"ACME","colleagues":["Rossi","Bianchi"]}`),
	}
	fuel := domain.ExpenseLine{
		ExpenseID:   "e2",
		Date:        date(2024, 3, 10),
		Type:        domain.TypeFuel,
		Description: "Gas",
		Amount:      decimal.RequireFromString("95.50"),
		Currency:    "EUR",
		Metadata:    json.RawMessage(`{"startLocation":"Milan","endLocation":"Rome","roundtrip":true,"distance":570}`),
	}
	hotel := domain.ExpenseLine{
		ExpenseID:   "e3",
		Date:        date(2024, 3, 10), // same date as fuel, must stay after it
		Type:        domain.TypeHotel,
		Description: "Conference stay",
		Amount:      decimal.NewFromInt(120),
		Currency:    "", // defaults to EUR
		Metadata:    json.RawMessage(`{"location":"Florence","nights":2}`),
	}
	return []string{"r1", "r2"}, map[string][]domain.ExpenseLine{
		"r1": {fuel, lunch},
		"r2": {hotel},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue("Expenses", ref)
	require.NoError(t, err)
	return v
}

func TestSpreadsheetBuilder_LayoutAndSorting(t *testing.T) {
	reportIDs, expenses := exportFixture()
	builder := services.NewSpreadsheetBuilder(testCompany)

	data, err := builder.Build(reportIDs, "EUR", expenses, testRates())
	require.NoError(t, err)

	f := openWorkbook(t, data)

	// Banner row carries the rate freshness timestamp.
	assert.Equal(t, "Exchange rates last updated 2024-03-01 12:00 UTC", cell(t, f, "A1"))

	// Header row.
	assert.Equal(t, "Date", cell(t, f, "A2"))
	assert.Equal(t, "Expense Type", cell(t, f, "B2"))
	assert.Equal(t, "Description", cell(t, f, "C2"))
	assert.Equal(t, "Company", cell(t, f, "D2"))
	assert.Equal(t, "Currency of Expense Line", cell(t, f, "E2"))
	assert.Equal(t, "Total of Expense Line", cell(t, f, "F2"))
	assert.Equal(t, "Exchange Rate", cell(t, f, "G2"))
	assert.Equal(t, "Selected Currency", cell(t, f, "H2"))
	assert.Equal(t, "Total in Selected Currency", cell(t, f, "I2"))
	assert.Equal(t, "KM", cell(t, f, "J2"))

	// Lines sorted by date ascending; the two 03-10 lines keep input order
	// (fuel from r1 before hotel from r2).
	assert.Equal(t, "03/08/2024", cell(t, f, "A3"))
	assert.Equal(t, "LUNCH", cell(t, f, "B3"))
	assert.Equal(t, "Team lunch - ACME - Rossi, Bianchi", cell(t, f, "C3"))
	assert.Equal(t, testCompany, cell(t, f, "D3"))
	assert.Equal(t, "USD", cell(t, f, "E3"))
	assert.Equal(t, "EUR", cell(t, f, "H3"))
	assert.Equal(t, "37.04", cell(t, f, "I3")) // 40 / 1.08
	assert.Equal(t, "", cell(t, f, "J3"))      // KM only for FUEL

	assert.Equal(t, "03/10/2024", cell(t, f, "A4"))
	assert.Equal(t, "FUEL", cell(t, f, "B4"))
	assert.Equal(t, "Gas - Milan - Rome - roundtrip", cell(t, f, "C4"))
	assert.Equal(t, "570", cell(t, f, "J4"))

	assert.Equal(t, "03/10/2024", cell(t, f, "A5"))
	assert.Equal(t, "HOTEL", cell(t, f, "B5"))
	assert.Equal(t, "Conference stay - Florence - 2", cell(t, f, "C5"))
	assert.Equal(t, "EUR", cell(t, f, "E5")) // missing currency defaulted
}

func TestSpreadsheetBuilder_TotalsSumDisplayedAmounts(t *testing.T) {
	reportIDs, expenses := exportFixture()
	builder := services.NewSpreadsheetBuilder(testCompany)

	data, err := builder.Build(reportIDs, "EUR", expenses, testRates())
	require.NoError(t, err)

	f := openWorkbook(t, data)

	require.Equal(t, "TOTAL", cell(t, f, "C6"))

	// The total equals the sum of the rounded per-line amounts as shown.
	sum := decimal.Zero
	for _, ref := range []string{"I3", "I4", "I5"} {
		v, err := decimal.NewFromString(cell(t, f, ref))
		require.NoError(t, err)
		sum = sum.Add(v)
	}
	total, err := decimal.NewFromString(cell(t, f, "I6"))
	require.NoError(t, err)
	assert.True(t, sum.Equal(total), "total %s != sum of rows %s", total, sum)
	assert.Equal(t, "252.54", total.StringFixed(2)) // 37.04 + 95.50 + 120.00
}

func TestSpreadsheetBuilder_EmptyExport(t *testing.T) {
	builder := services.NewSpreadsheetBuilder(testCompany)

	data, err := builder.Build([]string{"r1"}, "USD", map[string][]domain.ExpenseLine{}, domain.DefaultRateTable())
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, "Default exchange rates in use (no refreshed rates available)", cell(t, f, "A1"))
	assert.Equal(t, "TOTAL", cell(t, f, "C3"))
	assert.Equal(t, "0", cell(t, f, "I3"))
}

func TestSpreadsheetBuilder_Deterministic(t *testing.T) {
	reportIDs, expenses := exportFixture()
	builder := services.NewSpreadsheetBuilder(testCompany)

	first, err := builder.Build(reportIDs, "GBP", expenses, testRates())
	require.NoError(t, err)
	second, err := builder.Build(reportIDs, "GBP", expenses, testRates())
	require.NoError(t, err)

	// Compare at cell level: the xlsx container embeds package metadata,
	// so byte equality is not the contract.
	f1 := openWorkbook(t, first)
	f2 := openWorkbook(t, second)
	rows1, err := f1.GetRows("Expenses")
	require.NoError(t, err)
	rows2, err := f2.GetRows("Expenses")
	require.NoError(t, err)
	assert.Equal(t, rows1, rows2)
}
