package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMetadata_FlatShape(t *testing.T) {
	raw := json.RawMessage(`{"startLocation":"Milan","endLocation":"Rome","roundtrip":true,"distance":570}`)

	meta := domain.NormalizeMetadata(domain.TypeFuel, raw)
	fuel, ok := meta.(domain.FuelMetadata)
	require.True(t, ok)

	assert.Equal(t, "Milan", fuel.StartLocation)
	assert.Equal(t, "Rome", fuel.EndLocation)
	assert.Empty(t, fuel.VehicleType)
	require.NotNil(t, fuel.Roundtrip)
	assert.True(t, *fuel.Roundtrip)
	require.NotNil(t, fuel.Distance)
	assert.Equal(t, "570", fuel.Distance.String())
}

func TestNormalizeMetadata_WrappedShape(t *testing.T) {
	raw := json.RawMessage(`{"type":"FUEL","data":{"startLocation":"Turin","endLocation":"Genoa"}}`)

	meta := domain.NormalizeMetadata(domain.TypeFuel, raw)
	fuel, ok := meta.(domain.FuelMetadata)
	require.True(t, ok)

	assert.Equal(t, "Turin", fuel.StartLocation)
	assert.Equal(t, "Genoa", fuel.EndLocation)
	assert.Nil(t, fuel.Roundtrip)
}

func TestNormalizeMetadata_SpaceSeparatedKeys(t *testing.T) {
	raw := json.RawMessage(`{"start location":"Milan","end location":"Rome"}`)

	fuel, ok := domain.NormalizeMetadata(domain.TypeFuel, raw).(domain.FuelMetadata)
	require.True(t, ok)
	assert.Equal(t, "Milan", fuel.StartLocation)
	assert.Equal(t, "Rome", fuel.EndLocation)
}

func TestNormalizeMetadata_CamelCaseWinsOverSpaced(t *testing.T) {
	raw := json.RawMessage(`{"startLocation":"Milan","start location":"Naples"}`)

	fuel, ok := domain.NormalizeMetadata(domain.TypeFuel, raw).(domain.FuelMetadata)
	require.True(t, ok)
	assert.Equal(t, "Milan", fuel.StartLocation)
}

func TestNormalizeMetadata_AbsentAndMalformed(t *testing.T) {
	assert.Nil(t, domain.NormalizeMetadata(domain.TypeFuel, nil))
	assert.Nil(t, domain.NormalizeMetadata(domain.TypeFuel, json.RawMessage(``)))
	assert.Nil(t, domain.NormalizeMetadata(domain.TypeFuel, json.RawMessage(`not json at all`)))
	assert.Nil(t, domain.NormalizeMetadata(domain.TypeFuel, json.RawMessage(`[1,2,3]`)))
}

func TestNormalizeMetadata_TypesWithoutFields(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	assert.Nil(t, domain.NormalizeMetadata(domain.TypeTelepass, raw))
	assert.Nil(t, domain.NormalizeMetadata(domain.TypeTouristTax, raw))
	assert.Nil(t, domain.NormalizeMetadata(domain.TypeOther, raw))
}

func TestNormalizeMetadata_MealColleagues(t *testing.T) {
	listRaw := json.RawMessage(`{"customer":"ACME","colleagues":["Rossi","Bianchi"]}`)
	meal, ok := domain.NormalizeMetadata(domain.TypeLunch, listRaw).(domain.MealMetadata)
	require.True(t, ok)
	assert.Equal(t, "ACME", meal.Customer)
	assert.Equal(t, []string{"Rossi", "Bianchi"}, meal.Colleagues)

	// Voice intake sends colleagues as one comma-separated string.
	commaRaw := json.RawMessage(`{"colleagues":"Rossi, Bianchi"}`)
	meal, ok = domain.NormalizeMetadata(domain.TypeDinner, commaRaw).(domain.MealMetadata)
	require.True(t, ok)
	assert.Equal(t, []string{"Rossi", "Bianchi"}, meal.Colleagues)
}

func TestNormalizeMetadata_HotelNightsFromString(t *testing.T) {
	raw := json.RawMessage(`{"location":"Florence","nights":"3"}`)
	hotel, ok := domain.NormalizeMetadata(domain.TypeHotel, raw).(domain.HotelMetadata)
	require.True(t, ok)
	assert.Equal(t, "Florence", hotel.Location)
	require.NotNil(t, hotel.Nights)
	assert.Equal(t, 3, *hotel.Nights)
}

func TestNormalizeMetadata_TrainAndParking(t *testing.T) {
	train, ok := domain.NormalizeMetadata(domain.TypeTrain, json.RawMessage(`{"departure":"Milano Centrale","arrival":"Roma Termini"}`)).(domain.TrainMetadata)
	require.True(t, ok)
	assert.Equal(t, "Milano Centrale", train.Departure)
	assert.Equal(t, "Roma Termini", train.Arrival)

	parking, ok := domain.NormalizeMetadata(domain.TypeParking, json.RawMessage(`{"duration":"2h"}`)).(domain.ParkingMetadata)
	require.True(t, ok)
	assert.Equal(t, "2h", parking.Duration)
}
