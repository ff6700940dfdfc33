package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaledTemplateDecodeTemperature(t *testing.T) {
	tmpl := ScaledTemplate{Int: IntTemplate{Width: 2, Signed: true}, Resolution: 0.01}

	got, err := tmpl.Decode([]byte{0x76, 0x09})
	require.Nil(t, err)
	assert.InDelta(t, 24.22, got, 1e-9)
}

func TestScaledTemplateEncodeRoundTrip(t *testing.T) {
	tmpl := ScaledTemplate{Int: IntTemplate{Width: 2, Signed: true}, Resolution: 0.01}

	data, err := tmpl.Encode(24.22)
	require.Nil(t, err)
	assert.Equal(t, []byte{0x76, 0x09}, data)

	got, decErr := tmpl.Decode(data)
	require.Nil(t, decErr)
	assert.InDelta(t, 24.22, got, 1e-9)
}

func TestScaledTemplateEncodeHalfToEven(t *testing.T) {
	tmpl := ScaledTemplate{Int: IntTemplate{Width: 1}, Resolution: 1}

	// 2.5 and 3.5 both round to the nearest even integer.
	data, err := tmpl.Encode(2.5)
	require.Nil(t, err)
	assert.Equal(t, []byte{2}, data)

	data, err = tmpl.Encode(3.5)
	require.Nil(t, err)
	assert.Equal(t, []byte{4}, data)
}

func TestScaledTemplateEncodeOutOfRange(t *testing.T) {
	tmpl := ScaledTemplate{Int: IntTemplate{Width: 1}, Resolution: 1}

	_, err := tmpl.Encode(1000)
	require.NotNil(t, err)
	assert.Equal(t, ErrorRangeViolation, err.Kind)
}
