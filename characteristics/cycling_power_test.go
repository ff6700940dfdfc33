package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func cyclingPowerMeasurementSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a63", Name: "Cycling Power Measurement"}
}

func cyclingPowerControlPointSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a66", Name: "Cycling Power Control Point"}
}

func TestCyclingPowerMeasurementDecodeNoOptionalFields(t *testing.T) {
	c := newCyclingPowerMeasurementCodec(cyclingPowerMeasurementSpec())
	raw := []byte{0x00, 0x00, 0x64, 0x00}

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(CyclingPowerMeasurement)
	require.True(t, ok)
	assert.Equal(t, float64(100), rec.InstantaneousPower)
	assert.Nil(t, rec.PedalPowerBalance)
	assert.Nil(t, rec.AccumulatedTorque)
	assert.Nil(t, rec.WheelRevolutions)
	assert.Nil(t, rec.CrankRevolutions)
}

func TestCyclingPowerMeasurementEncodeRoundTripAllFields(t *testing.T) {
	c := newCyclingPowerMeasurementCodec(cyclingPowerMeasurementSpec())
	balance := 50.0
	torque := 10.0
	wheelRevs := uint32(1000)
	wheelTime := 2.0
	crankRevs := uint16(200)
	crankTime := 1.0

	rec := CyclingPowerMeasurement{
		InstantaneousPower: 250,
		PedalPowerBalance:  &balance,
		AccumulatedTorque:  &torque,
		WheelRevolutions:   &wheelRevs,
		LastWheelEventTime: &wheelTime,
		CrankRevolutions:   &crankRevs,
		LastCrankEventTime: &crankTime,
	}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	decoded, ok := data.Value.(CyclingPowerMeasurement)
	require.True(t, ok)
	assert.Equal(t, rec.InstantaneousPower, decoded.InstantaneousPower)
	require.NotNil(t, decoded.PedalPowerBalance)
	assert.InDelta(t, balance, *decoded.PedalPowerBalance, 0.01)
	require.NotNil(t, decoded.AccumulatedTorque)
	assert.InDelta(t, torque, *decoded.AccumulatedTorque, 0.05)
	require.NotNil(t, decoded.WheelRevolutions)
	assert.Equal(t, wheelRevs, *decoded.WheelRevolutions)
	require.NotNil(t, decoded.LastWheelEventTime)
	assert.InDelta(t, wheelTime, *decoded.LastWheelEventTime, 0.001)
	require.NotNil(t, decoded.CrankRevolutions)
	assert.Equal(t, crankRevs, *decoded.CrankRevolutions)
	require.NotNil(t, decoded.LastCrankEventTime)
	assert.InDelta(t, crankTime, *decoded.LastCrankEventTime, 0.001)
}

func TestCyclingPowerMeasurementTooShortFails(t *testing.T) {
	c := newCyclingPowerMeasurementCodec(cyclingPowerMeasurementSpec())
	data := c.Decode([]byte{0x00, 0x00, 0x64}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}

func TestCyclingPowerControlPointResponseDecode(t *testing.T) {
	c := newCyclingPowerControlPointCodec(cyclingPowerControlPointSpec())
	raw := []byte{0x20, 0x01, 0x01, 0xAA, 0xBB}

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(CyclingPowerControlPointResponse)
	require.True(t, ok)
	assert.Equal(t, byte(CyclingPowerOpSetCumulativeValue), rec.RequestOpcode)
	assert.Equal(t, byte(0x01), rec.ResponseCode)
	assert.Equal(t, []byte{0xAA, 0xBB}, rec.Parameters)
}

func TestCyclingPowerControlPointResponseWrongOpcodeFails(t *testing.T) {
	c := newCyclingPowerControlPointCodec(cyclingPowerControlPointSpec())
	raw := []byte{0x04, 0x01, 0x01}

	data := c.Decode(raw, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorTypeMismatch, data.Err.Kind)
}

func TestCyclingPowerControlPointResponseEncodeRoundTrip(t *testing.T) {
	c := newCyclingPowerControlPointCodec(cyclingPowerControlPointSpec())
	rec := CyclingPowerControlPointResponse{
		RequestOpcode: CyclingPowerOpRequestSupportedSensorLocations,
		ResponseCode:  0x01,
		Parameters:    []byte{0x00, 0x01, 0x05},
	}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)
	decoded := data.Value.(CyclingPowerControlPointResponse)
	assert.Equal(t, rec, decoded)
}
