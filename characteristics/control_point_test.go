package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

func lnControlPointSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a6b", Name: "LN Control Point"}
}

func timeUpdateControlPointSpec() *assignednum.CharacteristicSpec {
	return &assignednum.CharacteristicSpec{UUID: "2a16", Name: "Time Update Control Point"}
}

func TestLNControlPointResponseDecode(t *testing.T) {
	c := newLNControlPointCodec(lnControlPointSpec())
	raw := []byte{LNOpResponseCode, LNOpSetFixRate, 0x01, 0xFF}

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)

	rec, ok := data.Value.(LNControlPointResponse)
	require.True(t, ok)
	assert.Equal(t, byte(LNOpSetFixRate), rec.RequestOpcode)
	assert.Equal(t, byte(0x01), rec.ResponseCode)
	assert.Equal(t, []byte{0xFF}, rec.Parameters)
}

func TestLNControlPointResponseWrongOpcodeFails(t *testing.T) {
	c := newLNControlPointCodec(lnControlPointSpec())
	raw := []byte{LNOpSetFixRate, 0x01, 0x00}

	data := c.Decode(raw, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorTypeMismatch, data.Err.Kind)
}

func TestLNControlPointResponseEncodeRoundTrip(t *testing.T) {
	c := newLNControlPointCodec(lnControlPointSpec())
	rec := LNControlPointResponse{RequestOpcode: LNOpRequestNumberOfRoutes, ResponseCode: 0x01}

	encoded, err := c.Encode(rec, codec.NewContext())
	require.Nil(t, err)

	data := c.Decode(encoded, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)
	decoded := data.Value.(LNControlPointResponse)
	assert.Equal(t, rec.RequestOpcode, decoded.RequestOpcode)
	assert.Equal(t, rec.ResponseCode, decoded.ResponseCode)
}

func TestTimeUpdateControlPointResponseDecode(t *testing.T) {
	c := newTimeUpdateControlPointCodec(timeUpdateControlPointSpec())
	raw := []byte{0x01, 0x00}

	data := c.Decode(raw, codec.NewContext())
	require.True(t, data.OK, "%v", data.Err)
	rec, ok := data.Value.(TimeUpdateControlPointResponse)
	require.True(t, ok)
	assert.Equal(t, byte(0x01), rec.CurrentState)
	assert.Equal(t, byte(0x00), rec.Result)
}

func TestTimeUpdateControlPointEncodeRequestAndResponse(t *testing.T) {
	c := newTimeUpdateControlPointCodec(timeUpdateControlPointSpec())

	reqEncoded, err := c.Encode(TimeUpdateControlPointRequest{Opcode: TimeUpdateOpCancelTimeUpdate}, codec.NewContext())
	require.Nil(t, err)
	assert.Equal(t, []byte{TimeUpdateOpCancelTimeUpdate}, reqEncoded)

	respEncoded, err := c.Encode(TimeUpdateControlPointResponse{CurrentState: 0x02, Result: 0x01}, codec.NewContext())
	require.Nil(t, err)
	assert.Equal(t, []byte{0x02, 0x01}, respEncoded)
}

func TestTimeUpdateControlPointWrongLengthFails(t *testing.T) {
	c := newTimeUpdateControlPointCodec(timeUpdateControlPointSpec())
	data := c.Decode([]byte{0x01}, codec.NewContext())
	require.False(t, data.OK)
	assert.Equal(t, codec.ErrorLengthViolation, data.Err.Kind)
}
