package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func weightMeasurementSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a9d", Name: "Weight Measurement"}
}

func TestWeightMeasurementDecodeMetric(t *testing.T) {
	c := newWeightMeasurementCodec(weightMeasurementSpec())
	raw := []byte{0x00, 0x88, 0x13} // 0x1388 = 5000 * 0.005 = 25.0 kg

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(WeightMeasurement)
	require.True(t, ok)
	assert.False(t, rec.UnitsImperial)
	assert.InDelta(t, 25.0, rec.Weight, 0.001)
	assert.Equal(t, "kg", data.Unit)
}

func TestWeightMeasurementEncodeRoundTripImperialWithBMIHeight(t *testing.T) {
	c := newWeightMeasurementCodec(weightMeasurementSpec())
	bmi := 22.5
	height := 68.0
	userID := byte(1)

	rec := WeightMeasurement{
		UnitsImperial: true,
		Weight:        150.0,
		UserID:        &userID,
		BMI:           &bmi,
		Height:        &height,
	}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	decoded, ok := data.Value.(WeightMeasurement)
	require.True(t, ok)
	assert.True(t, decoded.UnitsImperial)
	assert.InDelta(t, rec.Weight, decoded.Weight, 0.01)
	require.NotNil(t, decoded.UserID)
	assert.Equal(t, userID, *decoded.UserID)
	require.NotNil(t, decoded.BMI)
	assert.InDelta(t, bmi, *decoded.BMI, 0.1)
	require.NotNil(t, decoded.Height)
	assert.InDelta(t, height, *decoded.Height, 0.1)
}

func TestWeightMeasurementTooShortFails(t *testing.T) {
	c := newWeightMeasurementCodec(weightMeasurementSpec())
	data := c.Decode([]byte{0x00, 0x01}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}
