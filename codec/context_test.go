package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextPeerValueRoundTrip(t *testing.T) {
	ctx := NewContext()

	_, ok := ctx.PeerValue("2a18")
	assert.False(t, ok)

	data := Success(42, "", []byte{0x2A})
	ctx.SetPeerValue("2a18", data)

	got, ok := ctx.PeerValue("2a18")
	assert.True(t, ok)
	assert.Same(t, data, got)
}

func TestContextDescriptorRoundTrip(t *testing.T) {
	ctx := NewContext()

	_, ok := ctx.Descriptor("2904")
	assert.False(t, ok)

	ctx.SetDescriptor("2904", "presentation format")

	got, ok := ctx.Descriptor("2904")
	assert.True(t, ok)
	assert.Equal(t, "presentation format", got)
}

func TestContextOverwritesPreviousPeerValue(t *testing.T) {
	ctx := NewContext()
	first := Success(1, "", nil)
	second := Success(2, "", nil)

	ctx.SetPeerValue("2a18", first)
	ctx.SetPeerValue("2a18", second)

	got, ok := ctx.PeerValue("2a18")
	assert.True(t, ok)
	assert.Same(t, second, got)
}
