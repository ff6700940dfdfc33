package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntTemplateDecodeUnsigned(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     IntTemplate
		data     []byte
		expected int64
	}{
		{"uint8", IntTemplate{Width: 1}, []byte{0x55}, 0x55},
		{"uint16 little-endian", IntTemplate{Width: 2}, []byte{0x48, 0x01}, 0x0148},
		{"uint24 little-endian", IntTemplate{Width: 3}, []byte{0x01, 0x02, 0x03}, 0x030201},
		{"uint32 little-endian", IntTemplate{Width: 4}, []byte{0x64, 0x00, 0x00, 0x00}, 0x64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tmpl.Decode(tt.data)
			require.Nil(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIntTemplateDecodeSignExtends(t *testing.T) {
	tests := []struct {
		name     string
		tmpl     IntTemplate
		data     []byte
		expected int64
	}{
		{"sint8 negative", IntTemplate{Width: 1, Signed: true}, []byte{0xFF}, -1},
		{"sint16 negative", IntTemplate{Width: 2, Signed: true}, []byte{0x00, 0x80}, -32768},
		{"sint24 negative", IntTemplate{Width: 3, Signed: true}, []byte{0xFF, 0xFF, 0xFF}, -1},
		{"sint24 sign bit set", IntTemplate{Width: 3, Signed: true}, []byte{0x00, 0x00, 0x80}, -8388608},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tmpl.Decode(tt.data)
			require.Nil(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIntTemplateRoundTrip(t *testing.T) {
	tmpl := IntTemplate{Width: 3, Signed: true}
	for _, v := range []int64{0, 1, -1, 100, -100, 8388607, -8388608} {
		data := tmpl.Encode(v)
		got, err := tmpl.Decode(data)
		require.Nil(t, err)
		assert.Equal(t, v, got)
	}
}

func TestIntTemplateDecodeWrongLength(t *testing.T) {
	tmpl := IntTemplate{Width: 2}
	_, err := tmpl.Decode([]byte{0x01})
	require.NotNil(t, err)
	assert.Equal(t, ErrorLengthViolation, err.Kind)
}

func TestIntTemplateBounds(t *testing.T) {
	min, max := IntTemplate{Width: 1, Signed: true}.Bounds()
	assert.Equal(t, int64(-128), min)
	assert.Equal(t, int64(127), max)

	min, max = IntTemplate{Width: 2}.Bounds()
	assert.Equal(t, int64(0), min)
	assert.Equal(t, int64(65535), max)
}
