package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func appearanceSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a01", Name: "Appearance", ExpectedLength: 2}
}

func TestAppearanceDecodeHeartRateBelt(t *testing.T) {
	c := newAppearanceCodec(appearanceSpec())
	raw := []byte{0x41, 0x03}

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(Appearance)
	require.True(t, ok)
	assert.Equal(t, int64(0x0D), rec.Category)
	assert.Equal(t, int64(1), rec.Subcategory)
	assert.Equal(t, "Heart Rate Sensor", rec.CategoryName)
	assert.Equal(t, "Heart Rate Belt", rec.SubcategoryName)
}

func TestAppearanceDecodeUnrecognizedCategory(t *testing.T) {
	c := newAppearanceCodec(appearanceSpec())
	raw := codec.IntTemplate{Width: 2}.Encode(int64(0x7F << 6))

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(Appearance)
	require.True(t, ok)
	assert.Equal(t, "Unrecognized (127)", rec.CategoryName)
}

func TestAppearanceEncodeRoundTrip(t *testing.T) {
	c := newAppearanceCodec(appearanceSpec())
	rec := resolveAppearance(0x341)

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)
	assert.Equal(t, []byte{0x41, 0x03}, encoded)
}

func TestAppearanceWrongLengthFails(t *testing.T) {
	c := newAppearanceCodec(appearanceSpec())
	data := c.Decode([]byte{0x41}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}
