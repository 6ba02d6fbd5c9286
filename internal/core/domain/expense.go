package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType identifies the category of an expense line. The token
// determines which metadata fields are meaningful for the line.
type ExpenseType string

const (
	TypeParking    ExpenseType = "PARKING"
	TypeFuel       ExpenseType = "FUEL"
	TypeTelepass   ExpenseType = "TELEPASS"
	TypeLunch      ExpenseType = "LUNCH"
	TypeDinner     ExpenseType = "DINNER"
	TypeHotel      ExpenseType = "HOTEL"
	TypeTrain      ExpenseType = "TRAIN"
	TypeBreakfast  ExpenseType = "BREAKFAST"
	TypeTouristTax ExpenseType = "TOURIST_TAX"
	TypeOther      ExpenseType = "OTHER"
)

// typeSynonyms maps Italian-language tokens, as produced by the voice intake
// channel, onto the canonical expense types.
var typeSynonyms = map[string]ExpenseType{
	"PARCHEGGIO":         TypeParking,
	"CARBURANTE":         TypeFuel,
	"BENZINA":            TypeFuel,
	"PRANZO":             TypeLunch,
	"CENA":               TypeDinner,
	"ALBERGO":            TypeHotel,
	"TRENO":              TypeTrain,
	"COLAZIONE":          TypeBreakfast,
	"TASSA_DI_SOGGIORNO": TypeTouristTax,
	"TASSA DI SOGGIORNO": TypeTouristTax,
	"ALTRO":              TypeOther,
}

var canonicalTypes = map[ExpenseType]struct{}{
	TypeParking:    {},
	TypeFuel:       {},
	TypeTelepass:   {},
	TypeLunch:      {},
	TypeDinner:     {},
	TypeHotel:      {},
	TypeTrain:      {},
	TypeBreakfast:  {},
	TypeTouristTax: {},
	TypeOther:      {},
}

// ParseExpenseType resolves a raw token, canonical or Italian synonym, to its
// canonical expense type. The second return value reports whether the token
// was recognized.
func ParseExpenseType(token string) (ExpenseType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(token))
	if _, ok := canonicalTypes[ExpenseType(normalized)]; ok {
		return ExpenseType(normalized), true
	}
	if t, ok := typeSynonyms[normalized]; ok {
		return t, true
	}
	return "", false
}

// NormalizeExpenseType is ParseExpenseType with a fallback: unrecognized
// tokens keep their (upper-cased) raw form so formatting can still dispatch
// to the default branch.
func NormalizeExpenseType(token string) ExpenseType {
	if t, ok := ParseExpenseType(token); ok {
		return t
	}
	return ExpenseType(strings.ToUpper(strings.TrimSpace(token)))
}

// ExpenseReport groups the expense lines of one user for a period,
// typically a month.
type ExpenseReport struct {
	ReportID string `json:"reportID"`
	UserID   string `json:"userID"`
	Title    string `json:"title"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`
	AuditFields
}

// ExpenseLine is one discrete spending record within a report. Amount is
// always expressed in Currency; a line never mixes currencies internally.
type ExpenseLine struct {
	ExpenseID   string          `json:"expenseID"`
	ReportID    string          `json:"reportID"`
	Date        time.Time       `json:"date"`
	Type        ExpenseType     `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`  // wrapped or flat shape, see NormalizeMetadata
	ReceiptID   string          `json:"receiptID,omitempty"` // URL or blob reference; empty means no receipt
	AuditFields
}
