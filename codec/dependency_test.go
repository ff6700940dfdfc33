package codec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/internal/assignednum"
)

type fakeCodec struct {
	BaseCodec
	decodeValue any
}

func (c fakeCodec) Decode(raw []byte, ctx *Context) *CharacteristicData {
	return Success(c.decodeValue, "", raw)
}

func (c fakeCodec) Encode(value any, ctx *Context) ([]byte, *Error) {
	return nil, nil
}

type fakeConnection struct {
	values map[string][]byte
}

func (f fakeConnection) ReadCharacteristic(ctx context.Context, serviceUUID, characteristicUUID string) ([]byte, error) {
	return f.values[characteristicUUID], nil
}

func (f fakeConnection) ReadDescriptor(ctx context.Context, serviceUUID, characteristicUUID, descriptorUUID string) ([]byte, error) {
	return nil, nil
}

func (f fakeConnection) Subscribe(ctx context.Context, serviceUUID, characteristicUUID string, fn func([]byte)) (func(), error) {
	return func() {}, nil
}

func TestResolverFetchesRequiredDependency(t *testing.T) {
	sequenceCodec := fakeCodec{
		BaseCodec:   NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "glucose-measurement"}, nil, nil),
		decodeValue: float64(7),
	}
	lookup := func(uuid string) (CharacteristicCodec, bool) {
		if uuid == "glucose-measurement" {
			return sequenceCodec, true
		}
		return nil, false
	}

	contextCodec := fakeCodec{
		BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "glucose-measurement-context"}, []string{"glucose-measurement"}, nil),
	}

	resolver := NewResolver(lookup)
	conn := fakeConnection{values: map[string][]byte{"glucose-measurement": {0x07}}}

	ctx, err := resolver.Resolve(context.Background(), conn, "glucose-service", contextCodec)
	require.Nil(t, err)

	peer, ok := ctx.PeerValue("glucose-measurement")
	require.True(t, ok)
	assert.Equal(t, float64(7), peer.Value)
}

func TestResolverMissingRequiredDependencyFails(t *testing.T) {
	lookup := func(uuid string) (CharacteristicCodec, bool) { return nil, false }
	codec := fakeCodec{BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "x"}, []string{"missing"}, nil)}

	resolver := NewResolver(lookup)
	_, err := resolver.Resolve(context.Background(), fakeConnection{}, "svc", codec)
	require.NotNil(t, err)
	assert.Equal(t, ErrorMissingDependency, err.Kind)
}

func TestResolverDetectsCycle(t *testing.T) {
	var codecA, codecB fakeCodec
	lookup := func(uuid string) (CharacteristicCodec, bool) {
		switch uuid {
		case "a":
			return codecA, true
		case "b":
			return codecB, true
		}
		return nil, false
	}

	codecA = fakeCodec{BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "a"}, []string{"b"}, nil)}
	codecB = fakeCodec{BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "b"}, []string{"a"}, nil)}

	resolver := NewResolver(lookup)
	conn := fakeConnection{values: map[string][]byte{"a": {0x01}, "b": {0x01}}}

	_, err := resolver.Resolve(context.Background(), conn, "svc", codecA)
	require.NotNil(t, err)
	assert.Equal(t, ErrorDependencyCycle, err.Kind)
}

func TestResolverDiamondDependencyIsNotReportedAsACycle(t *testing.T) {
	// root requires b and c; b also requires c. c is reachable by two
	// paths but there is no actual cycle.
	var rootCodec, bCodec, cCodec fakeCodec
	lookup := func(uuid string) (CharacteristicCodec, bool) {
		switch uuid {
		case "b":
			return bCodec, true
		case "c":
			return cCodec, true
		}
		return nil, false
	}

	rootCodec = fakeCodec{BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "root"}, []string{"b", "c"}, nil)}
	bCodec = fakeCodec{BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "b"}, []string{"c"}, nil)}
	cCodec = fakeCodec{BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "c"}, nil, nil), decodeValue: float64(3)}

	resolver := NewResolver(lookup)
	conn := fakeConnection{values: map[string][]byte{"b": {0x01}, "c": {0x03}}}

	ctx, err := resolver.Resolve(context.Background(), conn, "svc", rootCodec)
	require.Nil(t, err)

	peer, ok := ctx.PeerValue("c")
	require.True(t, ok)
	assert.Equal(t, float64(3), peer.Value)
}

func TestResolverOptionalDependencySkippedOnFailure(t *testing.T) {
	lookup := func(uuid string) (CharacteristicCodec, bool) { return nil, false }
	codec := fakeCodec{BaseCodec: NewBaseCodec(&assignednum.CharacteristicSpec{UUID: "x"}, nil, []string{"optional-missing"})}

	resolver := NewResolver(lookup)
	ctx, err := resolver.Resolve(context.Background(), fakeConnection{}, "svc", codec)
	require.Nil(t, err)
	_, ok := ctx.PeerValue("optional-missing")
	assert.False(t, ok)
}
