package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// CSCMeasurement is the decoded record for CSC Measurement (0x2A5B).
type CSCMeasurement struct {
	WheelRevolutions    *uint32
	LastWheelEventTime  *float64
	CrankRevolutions    *uint16
	LastCrankEventTime  *float64
}

const (
	cscFlagWheelRevolutionDataPresent = 1 << 0
	cscFlagCrankRevolutionDataPresent = 1 << 1
)

type cscMeasurementCodec struct {
	codec.BaseCodec
}

func newCSCMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return cscMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c cscMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 1 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "csc measurement requires at least 1 byte, got %d", len(raw)))
	}

	flags := raw[0]
	rec := CSCMeasurement{}
	offset := 1

	if flags&cscFlagWheelRevolutionDataPresent != 0 {
		if len(raw) < offset+6 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "wheel revolution flag set but bytes exhausted"))
		}
		revs, err := codec.IntTemplate{Width: 4}.Decode(raw[offset : offset+4])
		if err != nil {
			return codec.Failure(raw, err)
		}
		revsU32 := uint32(revs)
		rec.WheelRevolutions = &revsU32

		eventTimeRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[offset+4 : offset+6])
		if err != nil {
			return codec.Failure(raw, err)
		}
		eventTime := float64(eventTimeRaw) / 1024.0
		rec.LastWheelEventTime = &eventTime
		offset += 6
	}

	if flags&cscFlagCrankRevolutionDataPresent != 0 {
		if len(raw) < offset+4 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "crank revolution flag set but bytes exhausted"))
		}
		revs, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		revsU16 := uint16(revs)
		rec.CrankRevolutions = &revsU16

		eventTimeRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[offset+2 : offset+4])
		if err != nil {
			return codec.Failure(raw, err)
		}
		eventTime := float64(eventTimeRaw) / 1024.0
		rec.LastCrankEventTime = &eventTime
		offset += 4
	}

	return codec.Success(rec, "", raw)
}

func (c cscMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(CSCMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected CSCMeasurement")
	}

	var flags byte
	if rec.WheelRevolutions != nil {
		flags |= cscFlagWheelRevolutionDataPresent
	}
	if rec.CrankRevolutions != nil {
		flags |= cscFlagCrankRevolutionDataPresent
	}

	out := []byte{flags}
	if rec.WheelRevolutions != nil {
		out = append(out, codec.IntTemplate{Width: 4}.Encode(int64(*rec.WheelRevolutions))...)
		eventTime := int64(0)
		if rec.LastWheelEventTime != nil {
			eventTime = int64(*rec.LastWheelEventTime * 1024.0)
		}
		out = append(out, codec.IntTemplate{Width: 2}.Encode(eventTime)...)
	}
	if rec.CrankRevolutions != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.CrankRevolutions))...)
		eventTime := int64(0)
		if rec.LastCrankEventTime != nil {
			eventTime = int64(*rec.LastCrankEventTime * 1024.0)
		}
		out = append(out, codec.IntTemplate{Width: 2}.Encode(eventTime)...)
	}

	return out, nil
}
