package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorTemplateDecodeEncodeRoundTrip(t *testing.T) {
	tmpl := VectorTemplate{
		Component: ScaledTemplate{Int: IntTemplate{Width: 2, Signed: true}, Resolution: 0.01},
		Count:     2,
	}

	data := []byte{0x76, 0x09, 0x00, 0x00} // 24.22, 0.00
	got, err := tmpl.Decode(data)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{24.22, 0}, []float64(got), 1e-9)

	encoded, encErr := tmpl.Encode(got)
	require.Nil(t, encErr)
	assert.Equal(t, data, encoded)
}

func TestVectorTemplateDecodeWrongLength(t *testing.T) {
	tmpl := VectorTemplate{Component: ScaledTemplate{Int: IntTemplate{Width: 2}, Resolution: 1}, Count: 3}
	_, err := tmpl.Decode([]byte{0x00, 0x00})
	require.NotNil(t, err)
	assert.Equal(t, ErrorLengthViolation, err.Kind)
}

func TestVectorTemplateEncodeWrongComponentCount(t *testing.T) {
	tmpl := VectorTemplate{Component: ScaledTemplate{Int: IntTemplate{Width: 2}, Resolution: 1}, Count: 3}
	_, err := tmpl.Encode(Vector{1, 2})
	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeMismatch, err.Kind)
}
