package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// PLXSpotCheckMeasurement is the decoded record for PLX Spot-Check
// Measurement (0x2A5E). SpO2/PulseRate are percent/bpm. Each is whatever
// codec.SFloatTemplate.Decode produced: a plain float64 for a real
// reading, or one of its sentinel types (codec.NotPresent, codec.Reserved)
// for NaN/Inf/NRes/Reserved — callers must type-switch rather than assume
// a numeric value.
type PLXSpotCheckMeasurement struct {
	SpO2      any
	PulseRate any
	Timestamp any
	MeasurementStatus *codec.Bitmap
}

const (
	plxSpotCheckFlagTimestampPresent  = 1 << 0
	plxSpotCheckFlagMeasurementStatus = 1 << 1
	plxSpotCheckFlagDeviceSensorStatus = 1 << 2
	plxSpotCheckFlagPulseAmplitudeIndex = 1 << 3
)

var plxMeasurementStatusBits = map[int]string{
	0: "ExtendedDisplayUpdateOngoing",
	1: "EquipmentMalfunctionDetected",
	2: "SignalProcessingIrregularityDetected",
	3: "InadequateSignalDetected",
	4: "PoorSignalDetected",
	5: "LowPerfusionDetected",
	6: "ErraticSignalDetected",
	7: "NonpulsatileSignalDetected",
	8: "QuestionableSpO2MeasurementDetected",
	9: "QuestionablePulseRateMeasurementDetected",
	10: "FullyQualifiedData",
	11: "MeasurementUnavailable",
	12: "SensorDisconnected",
	13: "SensorMalfunctioning",
	14: "SensorDisplaced",
	15: "SensorDataStale",
}

type plxSpotCheckMeasurementCodec struct {
	codec.BaseCodec
}

func newPLXSpotCheckMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return plxSpotCheckMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c plxSpotCheckMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 5 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "plx spot-check measurement requires at least 5 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	rec := PLXSpotCheckMeasurement{}

	var err *codec.Error
	if rec.SpO2, err = decodeSFloatField(raw[1:3]); err != nil {
		return codec.Failure(raw, err)
	}
	if rec.PulseRate, err = decodeSFloatField(raw[3:5]); err != nil {
		return codec.Failure(raw, err)
	}
	offset := 5

	if flags&plxSpotCheckFlagTimestampPresent != 0 {
		if len(raw) < offset+7 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "timestamp flag set but bytes exhausted"))
		}
		ts, tErr := codec.TimeTemplate{}.Decode(raw[offset : offset+7])
		if tErr != nil {
			return codec.Failure(raw, tErr)
		}
		rec.Timestamp = ts
		offset += 7
	}

	if flags&plxSpotCheckFlagMeasurementStatus != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "measurement status flag set but bytes exhausted"))
		}
		bm, bErr := (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: plxMeasurementStatusBits}).Decode(raw[offset : offset+2])
		if bErr != nil {
			return codec.Failure(raw, bErr)
		}
		rec.MeasurementStatus = &bm
		offset += 2
	}

	return codec.Success(rec, "%", raw)
}

func (c plxSpotCheckMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(PLXSpotCheckMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected PLXSpotCheckMeasurement")
	}

	var flags byte
	if rec.Timestamp != nil {
		flags |= plxSpotCheckFlagTimestampPresent
	}
	if rec.MeasurementStatus != nil {
		flags |= plxSpotCheckFlagMeasurementStatus
	}

	out := []byte{flags}
	for _, v := range []any{rec.SpO2, rec.PulseRate} {
		b, err := codec.SFloatTemplate{}.Encode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	if rec.Timestamp != nil {
		t, ok := asTime(rec.Timestamp)
		if !ok {
			return nil, codec.NewError(codec.ErrorTypeMismatch, "expected time.Time timestamp")
		}
		out = append(out, codec.TimeTemplate{}.Encode(t)...)
	}
	if rec.MeasurementStatus != nil {
		names := make([]string, 0, len(rec.MeasurementStatus.Set))
		for name := range rec.MeasurementStatus.Set {
			names = append(names, name)
		}
		out = append(out, (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: plxMeasurementStatusBits}).Encode(names)...)
	}

	return out, nil
}

// PLXContinuousMeasurement is the decoded record for PLX Continuous
// Measurement (0x2A5F). Each SFLOAT-backed field holds whatever
// codec.SFloatTemplate.Decode produced — a plain float64 for a real
// reading, or one of its sentinel types (codec.NotPresent, codec.Reserved)
// for NaN/Inf/NRes/Reserved — callers must type-switch rather than assume
// a numeric value. The Fast/Slow fields are additionally nil when absent.
type PLXContinuousMeasurement struct {
	SpO2      any
	PulseRate any
	SpO2Fast  any
	PulseRateFast any
	SpO2Slow  any
	PulseRateSlow any
	MeasurementStatus *codec.Bitmap
}

const (
	plxContinuousFlagSpO2PRFastPresent = 1 << 0
	plxContinuousFlagSpO2PRSlowPresent = 1 << 1
	plxContinuousFlagMeasurementStatus = 1 << 2
	plxContinuousFlagDeviceSensorStatus = 1 << 3
	plxContinuousFlagPulseAmplitudeIndex = 1 << 4
)

type plxContinuousMeasurementCodec struct {
	codec.BaseCodec
}

func newPLXContinuousMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return plxContinuousMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c plxContinuousMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 5 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "plx continuous measurement requires at least 5 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	rec := PLXContinuousMeasurement{}

	var err *codec.Error
	if rec.SpO2, err = decodeSFloatField(raw[1:3]); err != nil {
		return codec.Failure(raw, err)
	}
	if rec.PulseRate, err = decodeSFloatField(raw[3:5]); err != nil {
		return codec.Failure(raw, err)
	}
	offset := 5

	if flags&plxContinuousFlagSpO2PRFastPresent != 0 {
		if len(raw) < offset+4 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "spo2pr-fast flag set but bytes exhausted"))
		}
		v1, e1 := decodeSFloatField(raw[offset : offset+2])
		if e1 != nil {
			return codec.Failure(raw, e1)
		}
		v2, e2 := decodeSFloatField(raw[offset+2 : offset+4])
		if e2 != nil {
			return codec.Failure(raw, e2)
		}
		rec.SpO2Fast = v1
		rec.PulseRateFast = v2
		offset += 4
	}

	if flags&plxContinuousFlagSpO2PRSlowPresent != 0 {
		if len(raw) < offset+4 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "spo2pr-slow flag set but bytes exhausted"))
		}
		v1, e1 := decodeSFloatField(raw[offset : offset+2])
		if e1 != nil {
			return codec.Failure(raw, e1)
		}
		v2, e2 := decodeSFloatField(raw[offset+2 : offset+4])
		if e2 != nil {
			return codec.Failure(raw, e2)
		}
		rec.SpO2Slow = v1
		rec.PulseRateSlow = v2
		offset += 4
	}

	if flags&plxContinuousFlagMeasurementStatus != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "measurement status flag set but bytes exhausted"))
		}
		bm, bErr := (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: plxMeasurementStatusBits}).Decode(raw[offset : offset+2])
		if bErr != nil {
			return codec.Failure(raw, bErr)
		}
		rec.MeasurementStatus = &bm
		offset += 2
	}

	return codec.Success(rec, "%", raw)
}

func (c plxContinuousMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(PLXContinuousMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected PLXContinuousMeasurement")
	}

	var flags byte
	if rec.SpO2Fast != nil && rec.PulseRateFast != nil {
		flags |= plxContinuousFlagSpO2PRFastPresent
	}
	if rec.SpO2Slow != nil && rec.PulseRateSlow != nil {
		flags |= plxContinuousFlagSpO2PRSlowPresent
	}
	if rec.MeasurementStatus != nil {
		flags |= plxContinuousFlagMeasurementStatus
	}

	out := []byte{flags}
	for _, v := range []any{rec.SpO2, rec.PulseRate} {
		b, err := codec.SFloatTemplate{}.Encode(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	if rec.SpO2Fast != nil && rec.PulseRateFast != nil {
		for _, v := range []any{rec.SpO2Fast, rec.PulseRateFast} {
			b, err := codec.SFloatTemplate{}.Encode(v)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	}
	if rec.SpO2Slow != nil && rec.PulseRateSlow != nil {
		for _, v := range []any{rec.SpO2Slow, rec.PulseRateSlow} {
			b, err := codec.SFloatTemplate{}.Encode(v)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	}
	if rec.MeasurementStatus != nil {
		names := make([]string, 0, len(rec.MeasurementStatus.Set))
		for name := range rec.MeasurementStatus.Set {
			names = append(names, name)
		}
		out = append(out, (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: plxMeasurementStatusBits}).Encode(names)...)
	}

	return out, nil
}
