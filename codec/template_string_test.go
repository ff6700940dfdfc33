package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringTemplateUTF8RoundTrip(t *testing.T) {
	tmpl := StringTemplate{Encoding: EncodingUTF8}

	data, err := tmpl.Encode("Polar H10")
	require.Nil(t, err)

	got, decErr := tmpl.Decode(data)
	require.Nil(t, decErr)
	assert.Equal(t, "Polar H10", got)
}

func TestStringTemplateUTF8RejectsInvalidBytes(t *testing.T) {
	_, err := StringTemplate{Encoding: EncodingUTF8}.Decode([]byte{0xFF, 0xFE})
	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeMismatch, err.Kind)
}

func TestStringTemplateUTF16LERoundTrip(t *testing.T) {
	tmpl := StringTemplate{Encoding: EncodingUTF16LE}

	data, err := tmpl.Encode("héllo")
	require.Nil(t, err)

	got, decErr := tmpl.Decode(data)
	require.Nil(t, decErr)
	assert.Equal(t, "héllo", got)
}

func TestStringTemplateUTF16LERejectsOddLength(t *testing.T) {
	_, err := StringTemplate{Encoding: EncodingUTF16LE}.Decode([]byte{0x01})
	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeMismatch, err.Kind)
}

func TestStringTemplateRejectsOverlength(t *testing.T) {
	tmpl := StringTemplate{Encoding: EncodingUTF8}
	long := strings.Repeat("x", maxStringBytes+1)

	_, err := tmpl.Encode(long)
	require.NotNil(t, err)
	assert.Equal(t, ErrorLengthViolation, err.Kind)

	_, decErr := tmpl.Decode([]byte(long))
	require.NotNil(t, decErr)
	assert.Equal(t, ErrorLengthViolation, decErr.Kind)
}
