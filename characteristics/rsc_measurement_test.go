package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func rscMeasurementSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a53", Name: "RSC Measurement"}
}

func TestRSCMeasurementDecodeMinimal(t *testing.T) {
	c := newRSCMeasurementCodec(rscMeasurementSpec())
	raw := []byte{0x04, 0x05, 0x00, 0x5A} // walking/running bit set, speed 5/256, cadence 90
	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(RSCMeasurement)
	require.True(t, ok)
	assert.True(t, rec.IsRunning)
	assert.InDelta(t, 5.0/256.0, rec.InstantaneousSpeed, 0.0001)
	assert.Equal(t, uint8(90), rec.InstantaneousCadence)
	assert.Nil(t, rec.InstantaneousStrideLength)
	assert.Nil(t, rec.TotalDistance)
}

func TestRSCMeasurementEncodeRoundTrip(t *testing.T) {
	c := newRSCMeasurementCodec(rscMeasurementSpec())
	stride := 1.2
	distance := 500.5

	rec := RSCMeasurement{
		IsRunning:                 true,
		InstantaneousSpeed:        3.5,
		InstantaneousCadence:      80,
		InstantaneousStrideLength: &stride,
		TotalDistance:             &distance,
	}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	decoded, ok := data.Value.(RSCMeasurement)
	require.True(t, ok)
	assert.True(t, decoded.IsRunning)
	assert.InDelta(t, rec.InstantaneousSpeed, decoded.InstantaneousSpeed, 0.01)
	assert.Equal(t, rec.InstantaneousCadence, decoded.InstantaneousCadence)
	require.NotNil(t, decoded.InstantaneousStrideLength)
	assert.InDelta(t, stride, *decoded.InstantaneousStrideLength, 0.01)
	require.NotNil(t, decoded.TotalDistance)
	assert.InDelta(t, distance, *decoded.TotalDistance, 0.1)
}

func TestRSCMeasurementTooShortFails(t *testing.T) {
	c := newRSCMeasurementCodec(rscMeasurementSpec())
	data := c.Decode([]byte{0x00, 0x00, 0x00}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}
