package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// GlucoseMeasurement is the decoded record for Glucose Measurement
// (0x2A18).
type GlucoseMeasurement struct {
	SequenceNumber  uint16
	Timestamp       any // time.Time from TimeTemplate
	TimeOffset      *float64 // minutes, present iff flag bit 0 set
	GlucoseConcentration *float64
	ConcentrationUnitIsMolPerLiter bool
	SampleType      *int64
	SampleLocation  *int64
	SensorStatus    *codec.Bitmap
}

const (
	glucoseFlagTimeOffsetPresent     = 1 << 0
	glucoseFlagConcentrationPresent  = 1 << 1
	glucoseFlagConcentrationUnitMol  = 1 << 2
	glucoseFlagSensorStatusPresent   = 1 << 3
	glucoseFlagContextInfoFollows    = 1 << 4
)

var glucoseSensorStatusBits = map[int]string{
	0: "DeviceBatteryLow",
	1: "SensorMalfunction",
	2: "SampleSizeInsufficient",
	3: "StripInsertionError",
	4: "StripTypeIncorrect",
	5: "ResultHigherThanRange",
	6: "ResultLowerThanRange",
	7: "TemperatureTooHigh",
	8: "TemperatureTooLow",
	9: "StrippedInserted",
	10: "GeneralDeviceFault",
	11: "TimeFault",
}

type glucoseMeasurementCodec struct {
	codec.BaseCodec
}

func newGlucoseMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return glucoseMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c glucoseMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 10 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "glucose measurement requires at least 10 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	seq, err := codec.IntTemplate{Width: 2}.Decode(raw[1:3])
	if err != nil {
		return codec.Failure(raw, err)
	}
	ts, err := codec.TimeTemplate{}.Decode(raw[3:10])
	if err != nil {
		return codec.Failure(raw, err)
	}

	rec := GlucoseMeasurement{SequenceNumber: uint16(seq), Timestamp: ts}
	offset := 10

	if flags&glucoseFlagTimeOffsetPresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "time offset flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2, Signed: true}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		minutes := float64(v)
		rec.TimeOffset = &minutes
		offset += 2
	}

	if flags&glucoseFlagConcentrationPresent != 0 {
		if len(raw) < offset+3 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "concentration flag set but bytes exhausted"))
		}
		v, decErr := codec.SFloatTemplate{}.Decode(raw[offset : offset+2])
		if decErr != nil {
			return codec.Failure(raw, decErr)
		}
		if f, ok := v.(float64); ok {
			rec.GlucoseConcentration = &f
		}
		rec.ConcentrationUnitIsMolPerLiter = flags&glucoseFlagConcentrationUnitMol != 0

		typeAndLocation := raw[offset+2]
		sampleType := int64(typeAndLocation >> 4)
		sampleLocation := int64(typeAndLocation & 0x0F)
		rec.SampleType = &sampleType
		rec.SampleLocation = &sampleLocation
		offset += 3
	}

	if flags&glucoseFlagSensorStatusPresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "sensor status flag set but bytes exhausted"))
		}
		bm, decErr := (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: glucoseSensorStatusBits}).Decode(raw[offset : offset+2])
		if decErr != nil {
			return codec.Failure(raw, decErr)
		}
		rec.SensorStatus = &bm
		offset += 2
	}

	return codec.Success(rec, "", raw)
}

func (c glucoseMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(GlucoseMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected GlucoseMeasurement")
	}

	var flags byte
	if rec.TimeOffset != nil {
		flags |= glucoseFlagTimeOffsetPresent
	}
	if rec.GlucoseConcentration != nil {
		flags |= glucoseFlagConcentrationPresent
		if rec.ConcentrationUnitIsMolPerLiter {
			flags |= glucoseFlagConcentrationUnitMol
		}
	}
	if rec.SensorStatus != nil {
		flags |= glucoseFlagSensorStatusPresent
	}

	out := []byte{flags}
	out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.SequenceNumber))...)
	timeBytes, err := encodeGlucoseTimestamp(rec.Timestamp)
	if err != nil {
		return nil, err
	}
	out = append(out, timeBytes...)

	if rec.TimeOffset != nil {
		out = append(out, codec.IntTemplate{Width: 2, Signed: true}.Encode(int64(*rec.TimeOffset))...)
	}
	if rec.GlucoseConcentration != nil {
		b, encErr := codec.SFloatTemplate{}.Encode(*rec.GlucoseConcentration)
		if encErr != nil {
			return nil, encErr
		}
		out = append(out, b...)
		var typeAndLocation byte
		if rec.SampleType != nil {
			typeAndLocation |= byte(*rec.SampleType) << 4
		}
		if rec.SampleLocation != nil {
			typeAndLocation |= byte(*rec.SampleLocation) & 0x0F
		}
		out = append(out, typeAndLocation)
	}
	if rec.SensorStatus != nil {
		names := make([]string, 0, len(rec.SensorStatus.Set))
		for name := range rec.SensorStatus.Set {
			names = append(names, name)
		}
		out = append(out, (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: glucoseSensorStatusBits}).Encode(names)...)
	}

	return out, nil
}

// GlucoseMeasurementContext is the decoded record for Glucose Measurement
// Context (0x2A34); it cross-checks its sequence number against the
// Glucose Measurement peer value recorded in the decode Context.
type GlucoseMeasurementContext struct {
	SequenceNumber uint16
	Carbohydrate   *codec.EnumValue
	CarbohydrateAmount *float64 // grams
}

const glucoseMeasurementUUID = "2a18"

type glucoseMeasurementContextCodec struct {
	codec.BaseCodec
}

func newGlucoseMeasurementContextCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return glucoseMeasurementContextCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c glucoseMeasurementContextCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 3 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "glucose measurement context requires at least 3 bytes, got %d", len(raw)))
	}

	seq, err := codec.IntTemplate{Width: 2}.Decode(raw[1:3])
	if err != nil {
		return codec.Failure(raw, err)
	}

	var peer *codec.CharacteristicData
	var ok bool
	if ctx != nil {
		peer, ok = ctx.PeerValue(glucoseMeasurementUUID)
	}
	if !ok || !peer.OK {
		return codec.Failure(raw, codec.NewError(codec.ErrorContextMismatch, "glucose measurement context requires the sibling glucose measurement (%s) in context", glucoseMeasurementUUID))
	}
	if m, ok := peer.Value.(GlucoseMeasurement); ok && m.SequenceNumber != uint16(seq) {
		return codec.Failure(raw, codec.NewError(codec.ErrorContextMismatch, "context sequence number %d does not match glucose measurement sequence %d", uint16(seq), m.SequenceNumber))
	}

	rec := GlucoseMeasurementContext{SequenceNumber: uint16(seq)}
	return codec.Success(rec, "", raw)
}

func (c glucoseMeasurementContextCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(GlucoseMeasurementContext)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected GlucoseMeasurementContext")
	}
	out := []byte{0x00}
	out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.SequenceNumber))...)
	return out, nil
}

func encodeGlucoseTimestamp(value any) ([]byte, *codec.Error) {
	t, ok := asTime(value)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected time.Time for glucose measurement timestamp")
	}
	return codec.TimeTemplate{}.Encode(t), nil
}
