package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatDescription renders the single human-readable description of an
// expense line: the free-text description composed with the type-specific
// metadata fields, in fixed order, joined with " - ".
//
// The type token may be a canonical one or an Italian synonym. Lines whose
// metadata is absent or unparseable keep their bare description.
func FormatDescription(typeToken string, description string, rawMetadata json.RawMessage) string {
	t := domain.NormalizeExpenseType(typeToken)
	meta := domain.NormalizeMetadata(t, rawMetadata)
	if meta == nil {
		return description
	}

	parts := []string{description}
	appendPart := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	switch m := meta.(type) {
	case domain.FuelMetadata:
		appendPart(m.StartLocation)
		appendPart(m.EndLocation)
		appendPart(m.VehicleType)
		if m.Roundtrip != nil {
			if *m.Roundtrip {
				appendPart("roundtrip")
			} else {
				appendPart("one way")
			}
		}
	case domain.ParkingMetadata:
		appendPart(m.Duration)
	case domain.MealMetadata:
		appendPart(m.Customer)
		appendPart(strings.Join(m.Colleagues, ", "))
	case domain.HotelMetadata:
		appendPart(m.Location)
		if m.Nights != nil {
			appendPart(strconv.Itoa(*m.Nights))
		}
	case domain.TrainMetadata:
		appendPart(m.Departure)
		appendPart(m.Arrival)
	}

	return strings.Join(parts, " - ")
}

// ExtractKilometers returns the trip distance of a FUEL line, used to
// populate the spreadsheet's KM column. Any other type, and FUEL lines
// without a distance, yield nil.
func ExtractKilometers(typeToken string, rawMetadata json.RawMessage) *decimal.Decimal {
	t := domain.NormalizeExpenseType(typeToken)
	if t != domain.TypeFuel {
		return nil
	}
	fuel, ok := domain.NormalizeMetadata(t, rawMetadata).(domain.FuelMetadata)
	if !ok {
		return nil
	}
	return fuel.Distance
}
