package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// CyclingPowerMeasurement is the decoded record for Cycling Power
// Measurement (0x2A63).
type CyclingPowerMeasurement struct {
	InstantaneousPower        float64 // watts
	PedalPowerBalance         *float64 // percent
	AccumulatedTorque         *float64 // newton metres
	WheelRevolutions          *uint32
	LastWheelEventTime        *float64 // seconds
	CrankRevolutions          *uint16
	LastCrankEventTime        *float64 // seconds
}

const (
	cyclingPowerFlagPedalBalancePresent = 1 << 0
	cyclingPowerFlagAccumulatedTorquePresent = 1 << 2
	cyclingPowerFlagWheelRevolutionDataPresent = 1 << 4
	cyclingPowerFlagCrankRevolutionDataPresent = 1 << 5
)

type cyclingPowerMeasurementCodec struct {
	codec.BaseCodec
}

func newCyclingPowerMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return cyclingPowerMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c cyclingPowerMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 4 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "cycling power measurement requires at least 4 bytes, got %d", len(raw)))
	}

	flagsRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[0:2])
	if err != nil {
		return codec.Failure(raw, err)
	}
	flags := uint16(flagsRaw)

	power, err := codec.IntTemplate{Width: 2, Signed: true}.Decode(raw[2:4])
	if err != nil {
		return codec.Failure(raw, err)
	}
	rec := CyclingPowerMeasurement{InstantaneousPower: float64(power)}
	offset := 4

	if flags&cyclingPowerFlagPedalBalancePresent != 0 {
		if len(raw) < offset+1 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "pedal power balance flag set but bytes exhausted"))
		}
		v, err := codec.ScaledTemplate{Int: codec.IntTemplate{Width: 1}, Resolution: 0.5}.Decode(raw[offset : offset+1])
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.PedalPowerBalance = &v
		offset++
	}

	if flags&cyclingPowerFlagAccumulatedTorquePresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "accumulated torque flag set but bytes exhausted"))
		}
		v, err := codec.ScaledTemplate{Int: codec.IntTemplate{Width: 2}, Resolution: 1.0 / 32}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.AccumulatedTorque = &v
		offset += 2
	}

	if flags&cyclingPowerFlagWheelRevolutionDataPresent != 0 {
		if len(raw) < offset+6 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "wheel revolution data flag set but bytes exhausted"))
		}
		revs, err := codec.IntTemplate{Width: 4}.Decode(raw[offset : offset+4])
		if err != nil {
			return codec.Failure(raw, err)
		}
		wheelRevs := uint32(revs)
		rec.WheelRevolutions = &wheelRevs
		offset += 4

		eventTime, err := codec.ScaledTemplate{Int: codec.IntTemplate{Width: 2}, Resolution: 1.0 / 2048}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.LastWheelEventTime = &eventTime
		offset += 2
	}

	if flags&cyclingPowerFlagCrankRevolutionDataPresent != 0 {
		if len(raw) < offset+4 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "crank revolution data flag set but bytes exhausted"))
		}
		revs, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		crankRevs := uint16(revs)
		rec.CrankRevolutions = &crankRevs
		offset += 2

		eventTime, err := codec.ScaledTemplate{Int: codec.IntTemplate{Width: 2}, Resolution: 1.0 / 1024}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.LastCrankEventTime = &eventTime
		offset += 2
	}

	return codec.Success(rec, "W", raw)
}

func (c cyclingPowerMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(CyclingPowerMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected CyclingPowerMeasurement")
	}

	var flags uint16
	if rec.PedalPowerBalance != nil {
		flags |= cyclingPowerFlagPedalBalancePresent
	}
	if rec.AccumulatedTorque != nil {
		flags |= cyclingPowerFlagAccumulatedTorquePresent
	}
	if rec.WheelRevolutions != nil {
		flags |= cyclingPowerFlagWheelRevolutionDataPresent
	}
	if rec.CrankRevolutions != nil {
		flags |= cyclingPowerFlagCrankRevolutionDataPresent
	}

	out := codec.IntTemplate{Width: 2}.Encode(int64(flags))
	out = append(out, codec.IntTemplate{Width: 2, Signed: true}.Encode(int64(rec.InstantaneousPower))...)

	if rec.PedalPowerBalance != nil {
		b, err := (codec.ScaledTemplate{Int: codec.IntTemplate{Width: 1}, Resolution: 0.5}).Encode(*rec.PedalPowerBalance)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	if rec.AccumulatedTorque != nil {
		b, err := (codec.ScaledTemplate{Int: codec.IntTemplate{Width: 2}, Resolution: 1.0 / 32}).Encode(*rec.AccumulatedTorque)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	if rec.WheelRevolutions != nil {
		out = append(out, codec.IntTemplate{Width: 4}.Encode(int64(*rec.WheelRevolutions))...)
		b, err := (codec.ScaledTemplate{Int: codec.IntTemplate{Width: 2}, Resolution: 1.0 / 2048}).Encode(*rec.LastWheelEventTime)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	if rec.CrankRevolutions != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.CrankRevolutions))...)
		b, err := (codec.ScaledTemplate{Int: codec.IntTemplate{Width: 2}, Resolution: 1.0 / 1024}).Encode(*rec.LastCrankEventTime)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	return out, nil
}

// Cycling Power Control Point (0x2A66) opcodes.
const (
	CyclingPowerOpSetCumulativeValue     = 1
	CyclingPowerOpRequestSupportedSensorLocations = 4
	CyclingPowerOpResponseCode           = 32
)

// CyclingPowerControlPointResponse is the decoded record for a control
// point indication: response opcode (fixed 32), the original request
// opcode, a response code, and opcode-specific parameters.
type CyclingPowerControlPointResponse struct {
	RequestOpcode byte
	ResponseCode  byte
	Parameters    []byte
}

type cyclingPowerControlPointCodec struct {
	codec.BaseCodec
}

func newCyclingPowerControlPointCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return cyclingPowerControlPointCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c cyclingPowerControlPointCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 3 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "control point response requires at least 3 bytes, got %d", len(raw)))
	}
	if raw[0] != CyclingPowerOpResponseCode {
		return codec.Failure(raw, codec.NewError(codec.ErrorTypeMismatch, "expected response opcode %d, got %d", CyclingPowerOpResponseCode, raw[0]))
	}
	rec := CyclingPowerControlPointResponse{
		RequestOpcode: raw[1],
		ResponseCode:  raw[2],
		Parameters:    append([]byte(nil), raw[3:]...),
	}
	return codec.Success(rec, "", raw)
}

func (c cyclingPowerControlPointCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(CyclingPowerControlPointResponse)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected CyclingPowerControlPointResponse")
	}
	out := []byte{CyclingPowerOpResponseCode, rec.RequestOpcode, rec.ResponseCode}
	return append(out, rec.Parameters...), nil
}
