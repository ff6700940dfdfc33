package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// LNControlPointResponse is the decoded record for LN Control Point
// (0x2A6B) responses. The LN Control Point codec decodes and encodes
// response frames only; request frames (op code + parameters) are neither
// decoded nor encoded here.
const (
	LNOpSetCumulativeValue           = 1
	LNOpMaskLocationAndSpeedContent  = 2
	LNOpNavigationControl            = 3
	LNOpRequestNumberOfRoutes        = 4
	LNOpRequestNameOfRoute           = 5
	LNOpSelectRoute                  = 6
	LNOpSetFixRate                   = 7
	LNOpSetElevation                 = 8
	LNOpResponseCode                 = 32
)

type LNControlPointResponse struct {
	RequestOpcode byte
	ResponseCode  byte
	Parameters    []byte
}

type lnControlPointCodec struct {
	codec.BaseCodec
}

func newLNControlPointCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return lnControlPointCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c lnControlPointCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 3 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "ln control point response requires at least 3 bytes, got %d", len(raw)))
	}
	if raw[0] != LNOpResponseCode {
		return codec.Failure(raw, codec.NewError(codec.ErrorTypeMismatch, "expected ln control point response op code %d, got %d", LNOpResponseCode, raw[0]))
	}
	rec := LNControlPointResponse{RequestOpcode: raw[1], ResponseCode: raw[2]}
	if len(raw) > 3 {
		rec.Parameters = append([]byte(nil), raw[3:]...)
	}
	return codec.Success(rec, "", raw)
}

func (c lnControlPointCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(LNControlPointResponse)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected LNControlPointResponse")
	}
	out := []byte{LNOpResponseCode, rec.RequestOpcode, rec.ResponseCode}
	return append(out, rec.Parameters...), nil
}

// TimeUpdateControlPointRequest/Response frame the Time Update Control
// Point (0x2A16) command/response exchange.
const (
	TimeUpdateOpGetTimeUpdateState = 1
	TimeUpdateOpCancelTimeUpdate   = 2
)

type TimeUpdateControlPointRequest struct {
	Opcode byte
}

type TimeUpdateControlPointResponse struct {
	CurrentState byte
	Result       byte
}

type timeUpdateControlPointCodec struct {
	codec.BaseCodec
}

func newTimeUpdateControlPointCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return timeUpdateControlPointCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c timeUpdateControlPointCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) != 2 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "time update control point response requires exactly 2 bytes, got %d", len(raw)))
	}
	rec := TimeUpdateControlPointResponse{CurrentState: raw[0], Result: raw[1]}
	return codec.Success(rec, "", raw)
}

func (c timeUpdateControlPointCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	switch v := value.(type) {
	case TimeUpdateControlPointRequest:
		return []byte{v.Opcode}, nil
	case TimeUpdateControlPointResponse:
		return []byte{v.CurrentState, v.Result}, nil
	default:
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected TimeUpdateControlPointRequest or TimeUpdateControlPointResponse")
	}
}
