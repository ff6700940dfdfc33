package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodySensorLocationTemplate() EnumTemplate {
	return EnumTemplate{
		Int: IntTemplate{Width: 1},
		Variants: map[int64]string{
			0: "Other",
			1: "Chest",
			2: "Wrist",
			3: "Finger",
			4: "Hand",
			5: "Ear Lobe",
			6: "Foot",
		},
		OnUnknown: UnknownEnumError,
	}
}

func TestEnumTemplateDecodeKnownVariant(t *testing.T) {
	got, err := bodySensorLocationTemplate().Decode([]byte{0x02})
	require.Nil(t, err)
	assert.Equal(t, EnumValue{Raw: 2, Name: "Wrist", Known: true}, got)
}

func TestEnumTemplateDecodeUnknownVariantErrors(t *testing.T) {
	_, err := bodySensorLocationTemplate().Decode([]byte{0x63})
	require.NotNil(t, err)
	assert.Equal(t, ErrorUnknownEnumValue, err.Kind)
}

func TestEnumTemplateDecodeUnknownVariantPassthrough(t *testing.T) {
	tmpl := bodySensorLocationTemplate()
	tmpl.OnUnknown = UnknownEnumPassthrough

	got, err := tmpl.Decode([]byte{0x63})
	require.Nil(t, err)
	assert.Equal(t, EnumValue{Raw: 0x63, Known: false}, got)
}

func TestEnumTemplateEncodeName(t *testing.T) {
	tmpl := bodySensorLocationTemplate()

	data, err := tmpl.EncodeName("Wrist")
	require.Nil(t, err)
	assert.Equal(t, []byte{0x02}, data)

	_, err = tmpl.EncodeName("Not A Variant")
	require.NotNil(t, err)
	assert.Equal(t, ErrorUnknownEnumValue, err.Kind)
}
