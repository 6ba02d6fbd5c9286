package dto

import (
	"encoding/json"
	"time"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseLineRequest is the payload for adding an expense line to a
// report. Type accepts canonical tokens and their Italian synonyms; the
// expensetype binding tag rejects anything else. Currency defaults to EUR
// when omitted.
type CreateExpenseLineRequest struct {
	Date        time.Time       `json:"date" binding:"required"`
	Type        string          `json:"type" binding:"required,expensetype"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,iso4217"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	ReceiptID   string          `json:"receiptId,omitempty"`
}

// ExpenseLineResponse is the API representation of an expense line.
type ExpenseLineResponse struct {
	ExpenseID   string          `json:"expenseId"`
	ReportID    string          `json:"reportId"`
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	ReceiptID   string          `json:"receiptId,omitempty"`
}

// ToExpenseLineResponse maps a domain expense line to its API representation.
func ToExpenseLineResponse(l *domain.ExpenseLine) ExpenseLineResponse {
	return ExpenseLineResponse{
		ExpenseID:   l.ExpenseID,
		ReportID:    l.ReportID,
		Date:        l.Date,
		Type:        string(l.Type),
		Description: l.Description,
		Amount:      l.Amount,
		Currency:    l.Currency,
		Metadata:    l.Metadata,
		ReceiptID:   l.ReceiptID,
	}
}

// ToExpenseLineResponses maps a slice of domain expense lines.
func ToExpenseLineResponses(lines []domain.ExpenseLine) []ExpenseLineResponse {
	out := make([]ExpenseLineResponse, 0, len(lines))
	for i := range lines {
		out = append(out, ToExpenseLineResponse(&lines[i]))
	}
	return out
}
