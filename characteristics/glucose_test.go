package characteristics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func glucoseMeasurementSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a18", Name: "Glucose Measurement"}
}

func glucoseMeasurementContextSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a34", Name: "Glucose Measurement Context", RequiredCharacteristics: []string{"2a18"}}
}

func glucoseTimestampBytes(t time.Time) []byte {
	return codec.TimeTemplate{}.Encode(t)
}

func TestGlucoseMeasurementDecodeMinimal(t *testing.T) {
	c := newGlucoseMeasurementCodec(glucoseMeasurementSpec())
	ts := time.Date(2024, time.March, 1, 8, 30, 0, 0, time.UTC)
	raw := append([]byte{0x00, 0x2A, 0x00}, glucoseTimestampBytes(ts)...)

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(GlucoseMeasurement)
	require.True(t, ok)
	assert.Equal(t, uint16(42), rec.SequenceNumber)
	assert.Nil(t, rec.TimeOffset)
	assert.Nil(t, rec.GlucoseConcentration)
	assert.Nil(t, rec.SensorStatus)
}

func TestGlucoseMeasurementEncodeRoundTrip(t *testing.T) {
	c := newGlucoseMeasurementCodec(glucoseMeasurementSpec())
	ts := time.Date(2024, time.March, 1, 8, 30, 0, 0, time.UTC)
	concentration := 5.5
	sampleType := int64(1)
	sampleLocation := int64(2)

	rec := GlucoseMeasurement{
		SequenceNumber:       7,
		Timestamp:            ts,
		GlucoseConcentration: &concentration,
		SampleType:           &sampleType,
		SampleLocation:       &sampleLocation,
	}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	decoded, ok := data.Value.(GlucoseMeasurement)
	require.True(t, ok)
	assert.Equal(t, rec.SequenceNumber, decoded.SequenceNumber)
	require.NotNil(t, decoded.GlucoseConcentration)
	assert.InDelta(t, concentration, *decoded.GlucoseConcentration, 0.01)
	require.NotNil(t, decoded.SampleType)
	assert.Equal(t, sampleType, *decoded.SampleType)
	require.NotNil(t, decoded.SampleLocation)
	assert.Equal(t, sampleLocation, *decoded.SampleLocation)
}

func TestGlucoseMeasurementContextMatchesPeerSequence(t *testing.T) {
	ctx := codec.NewContext()
	ctx.SetPeerValue("2a18", codec.Success(GlucoseMeasurement{SequenceNumber: 7}, "", nil))

	c := newGlucoseMeasurementContextCodec(glucoseMeasurementContextSpec())
	raw := []byte{0x00, 0x07, 0x00}

	data := c.Decode(raw, ctx)
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(GlucoseMeasurementContext)
	require.True(t, ok)
	assert.Equal(t, uint16(7), rec.SequenceNumber)
}

func TestGlucoseMeasurementContextMismatchedPeerSequenceFails(t *testing.T) {
	ctx := codec.NewContext()
	ctx.SetPeerValue("2a18", codec.Success(GlucoseMeasurement{SequenceNumber: 7}, "", nil))

	c := newGlucoseMeasurementContextCodec(glucoseMeasurementContextSpec())
	raw := []byte{0x00, 0x08, 0x00} // sequence 8, peer recorded 7

	data := c.Decode(raw, ctx)
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorContextMismatch, data.Err.Kind)
}

func TestGlucoseMeasurementContextFailsWithNoPeer(t *testing.T) {
	c := newGlucoseMeasurementContextCodec(glucoseMeasurementContextSpec())
	raw := []byte{0x00, 0x09, 0x00}

	data := c.Decode(raw, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorContextMismatch, data.Err.Kind)
}

func TestGlucoseMeasurementTooShortFails(t *testing.T) {
	c := newGlucoseMeasurementCodec(glucoseMeasurementSpec())
	data := c.Decode([]byte{0x00, 0x01}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}
