package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func temperatureMeasurementSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a1c", Name: "Temperature Measurement"}
}

func TestTemperatureMeasurementEncodeRoundTripCelsius(t *testing.T) {
	c := newTemperatureMeasurementCodec(temperatureMeasurementSpec())
	bodyType := int64(2)

	rec := TemperatureMeasurement{
		Temperature:     37.2,
		TemperatureType: &bodyType,
	}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	decoded, ok := data.Value.(TemperatureMeasurement)
	require.True(t, ok)
	assert.False(t, decoded.UnitIsFahrenheit)
	assert.InDelta(t, rec.Temperature, decoded.Temperature, 0.01)
	require.NotNil(t, decoded.TemperatureType)
	assert.Equal(t, bodyType, *decoded.TemperatureType)
	assert.Equal(t, "Body (general)", temperatureTypeNames[*decoded.TemperatureType])
}

func TestTemperatureMeasurementEncodeRoundTripFahrenheitNoOptionalFields(t *testing.T) {
	c := newTemperatureMeasurementCodec(temperatureMeasurementSpec())
	rec := TemperatureMeasurement{UnitIsFahrenheit: true, Temperature: 98.6}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)
	decoded := data.Value.(TemperatureMeasurement)
	assert.True(t, decoded.UnitIsFahrenheit)
	assert.InDelta(t, rec.Temperature, decoded.Temperature, 0.01)
	assert.Nil(t, decoded.TemperatureType)
	assert.Equal(t, "Fahrenheit", data.Unit)
}

func TestTemperatureMeasurementTooShortFails(t *testing.T) {
	c := newTemperatureMeasurementCodec(temperatureMeasurementSpec())
	data := c.Decode([]byte{0x00, 0x01}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}
