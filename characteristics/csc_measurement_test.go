package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func cscMeasurementSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a5b", Name: "CSC Measurement"}
}

func TestCSCMeasurementDecodeNoOptionalFields(t *testing.T) {
	c := newCSCMeasurementCodec(cscMeasurementSpec())
	data := c.Decode([]byte{0x00}, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(CSCMeasurement)
	require.True(t, ok)
	assert.Nil(t, rec.WheelRevolutions)
	assert.Nil(t, rec.CrankRevolutions)
}

func TestCSCMeasurementEncodeRoundTrip(t *testing.T) {
	c := newCSCMeasurementCodec(cscMeasurementSpec())
	wheelRevs := uint32(5000)
	wheelTime := 2.0
	crankRevs := uint16(300)
	crankTime := 0.5

	rec := CSCMeasurement{
		WheelRevolutions:   &wheelRevs,
		LastWheelEventTime: &wheelTime,
		CrankRevolutions:   &crankRevs,
		LastCrankEventTime: &crankTime,
	}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	decoded, ok := data.Value.(CSCMeasurement)
	require.True(t, ok)
	require.NotNil(t, decoded.WheelRevolutions)
	assert.Equal(t, wheelRevs, *decoded.WheelRevolutions)
	require.NotNil(t, decoded.LastWheelEventTime)
	assert.InDelta(t, wheelTime, *decoded.LastWheelEventTime, 0.001)
	require.NotNil(t, decoded.CrankRevolutions)
	assert.Equal(t, crankRevs, *decoded.CrankRevolutions)
	require.NotNil(t, decoded.LastCrankEventTime)
	assert.InDelta(t, crankTime, *decoded.LastCrankEventTime, 0.001)
}

func TestCSCMeasurementTooShortFails(t *testing.T) {
	c := newCSCMeasurementCodec(cscMeasurementSpec())
	data := c.Decode([]byte{}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}
