package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseMetadata is the normalized, strongly-typed form of an expense
// line's free-form metadata. Exactly one variant applies per expense type.
type ExpenseMetadata interface {
	metadataVariant()
}

// FuelMetadata carries trip detail for FUEL lines.
type FuelMetadata struct {
	StartLocation string
	EndLocation   string
	VehicleType   string
	Roundtrip     *bool
	Distance      *decimal.Decimal // kilometers
}

// MealMetadata carries guest detail for LUNCH, DINNER and BREAKFAST lines.
type MealMetadata struct {
	Customer   string
	Colleagues []string
}

// HotelMetadata carries stay detail for HOTEL lines.
type HotelMetadata struct {
	Location string
	Nights   *int
}

// TrainMetadata carries route detail for TRAIN lines.
type TrainMetadata struct {
	Departure string
	Arrival   string
}

// ParkingMetadata carries duration detail for PARKING lines.
type ParkingMetadata struct {
	Duration string
}

func (FuelMetadata) metadataVariant()    {}
func (MealMetadata) metadataVariant()    {}
func (HotelMetadata) metadataVariant()   {}
func (TrainMetadata) metadataVariant()   {}
func (ParkingMetadata) metadataVariant() {}

// NormalizeMetadata extracts the typed metadata variant relevant to the
// given expense type from a loosely-typed raw mapping.
//
// Two input shapes are accepted: the wrapped form {"type": ..., "data": {...}}
// and the flat form {...fields}. Field names may be camelCase
// ("startLocation") or human-readable space-separated ("start location");
// camelCase wins when both are present. Every field is optional.
//
// A nil result means "no metadata" and is never an error: absent input,
// malformed JSON, and expense types without metadata fields all yield nil.
func NormalizeMetadata(t ExpenseType, raw json.RawMessage) ExpenseMetadata {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	// Unwrap the {type, data} envelope when present.
	if data, ok := fields["data"].(map[string]any); ok {
		fields = data
	}

	switch t {
	case TypeFuel:
		return FuelMetadata{
			StartLocation: stringField(fields, "startLocation", "start location"),
			EndLocation:   stringField(fields, "endLocation", "end location"),
			VehicleType:   stringField(fields, "vehicleType", "vehicle type"),
			Roundtrip:     boolField(fields, "roundtrip", "round trip"),
			Distance:      decimalField(fields, "distance", "distance"),
		}
	case TypeLunch, TypeDinner, TypeBreakfast:
		return MealMetadata{
			Customer:   stringField(fields, "customer", "customer"),
			Colleagues: listField(fields, "colleagues", "colleagues"),
		}
	case TypeHotel:
		return HotelMetadata{
			Location: stringField(fields, "location", "location"),
			Nights:   intField(fields, "nights", "nights"),
		}
	case TypeTrain:
		return TrainMetadata{
			Departure: stringField(fields, "departure", "departure"),
			Arrival:   stringField(fields, "arrival", "arrival"),
		}
	case TypeParking:
		return ParkingMetadata{
			Duration: stringField(fields, "duration", "duration"),
		}
	default:
		// TELEPASS, TOURIST_TAX, OTHER carry no metadata fields.
		return nil
	}
}

// lookup returns the value under the camelCase key, falling back to the
// space-separated variant.
func lookup(fields map[string]any, camel, spaced string) (any, bool) {
	if v, ok := fields[camel]; ok {
		return v, true
	}
	if v, ok := fields[spaced]; ok {
		return v, true
	}
	return nil, false
}

func stringField(fields map[string]any, camel, spaced string) string {
	v, ok := lookup(fields, camel, spaced)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func boolField(fields map[string]any, camel, spaced string) *bool {
	v, ok := lookup(fields, camel, spaced)
	if !ok {
		return nil
	}
	switch b := v.(type) {
	case bool:
		return &b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return nil
		}
		return &parsed
	}
	return nil
}

func intField(fields map[string]any, camel, spaced string) *int {
	d := decimalField(fields, camel, spaced)
	if d == nil {
		return nil
	}
	n := int(d.IntPart())
	return &n
}

func decimalField(fields map[string]any, camel, spaced string) *decimal.Decimal {
	v, ok := lookup(fields, camel, spaced)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		d := decimal.NewFromFloat(n)
		return &d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return nil
		}
		return &d
	}
	return nil
}

// listField accepts either a JSON array of strings or a single
// comma-separated string, as voice intake produces the latter.
func listField(fields map[string]any, camel, spaced string) []string {
	v, ok := lookup(fields, camel, spaced)
	if !ok {
		return nil
	}
	var out []string
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(list, ",") {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}
