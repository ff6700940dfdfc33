package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// BloodPressureMeasurement is the decoded record for Blood Pressure
// Measurement (0x2A35). Systolic/Diastolic/MeanArterialPressure are in
// mmHg when UnitIsKPa is false, kPa otherwise. Each SFLOAT-backed field
// holds whatever codec.SFloatTemplate.Decode produced: a plain float64 for
// a real reading, or one of its sentinel types (codec.NotPresent,
// codec.Reserved) for NaN/Inf/NRes/Reserved — callers must type-switch
// rather than assume a numeric value.
type BloodPressureMeasurement struct {
	UnitIsKPa            bool
	Systolic             any
	Diastolic            any
	MeanArterialPressure any
	Timestamp            any
	PulseRate            any
	UserID               *byte
	MeasurementStatus    *codec.Bitmap
}

const (
	bloodPressureFlagUnitKPa            = 1 << 0
	bloodPressureFlagTimestampPresent   = 1 << 1
	bloodPressureFlagPulseRatePresent   = 1 << 2
	bloodPressureFlagUserIDPresent      = 1 << 3
	bloodPressureFlagMeasurementStatusPresent = 1 << 4
)

var bloodPressureStatusBits = map[int]string{
	0: "BodyMovementDetected",
	1: "CuffTooLoose",
	2: "IrregularPulseDetected",
	3: "PulseRateExceedsUpperLimit",
	4: "PulseRateLessThanLowerLimit",
	5: "ImproperMeasurementPosition",
}

type bloodPressureMeasurementCodec struct {
	codec.BaseCodec
}

func newBloodPressureMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return bloodPressureMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

// decodeSFloatField decodes one SFLOAT field and returns whatever
// codec.SFloatTemplate.Decode produced verbatim — a float64 for a real
// reading, or a NotPresent/Reserved sentinel — so callers never collapse
// those sentinels into a numeric 0.0.
func decodeSFloatField(raw []byte) (any, *codec.Error) {
	return codec.SFloatTemplate{}.Decode(raw)
}

func (c bloodPressureMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 7 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "blood pressure measurement requires at least 7 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	rec := BloodPressureMeasurement{UnitIsKPa: flags&bloodPressureFlagUnitKPa != 0}

	var err *codec.Error
	if rec.Systolic, err = decodeSFloatField(raw[1:3]); err != nil {
		return codec.Failure(raw, err)
	}
	if rec.Diastolic, err = decodeSFloatField(raw[3:5]); err != nil {
		return codec.Failure(raw, err)
	}
	if rec.MeanArterialPressure, err = decodeSFloatField(raw[5:7]); err != nil {
		return codec.Failure(raw, err)
	}
	offset := 7

	if flags&bloodPressureFlagTimestampPresent != 0 {
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

	if flags&bloodPressureFlagPulseRatePresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "pulse rate flag set but bytes exhausted"))
		}
		pulse, pErr := decodeSFloatField(raw[offset : offset+2])
		if pErr != nil {
			return codec.Failure(raw, pErr)
		}
		rec.PulseRate = pulse
		offset += 2
	}

	if flags&bloodPressureFlagUserIDPresent != 0 {
		if len(raw) < offset+1 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "user id flag set but bytes exhausted"))
		}
		id := raw[offset]
		rec.UserID = &id
		offset++
	}

	if flags&bloodPressureFlagMeasurementStatusPresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "measurement status flag set but bytes exhausted"))
		}
		bm, bErr := (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: bloodPressureStatusBits}).Decode(raw[offset : offset+2])
		if bErr != nil {
			return codec.Failure(raw, bErr)
		}
		rec.MeasurementStatus = &bm
		offset += 2
	}

	unit := "mmHg"
	if rec.UnitIsKPa {
		unit = "kPa"
	}
	return codec.Success(rec, unit, raw)
}

func (c bloodPressureMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(BloodPressureMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected BloodPressureMeasurement")
	}

	var flags byte
	if rec.UnitIsKPa {
		flags |= bloodPressureFlagUnitKPa
	}
	if rec.Timestamp != nil {
		flags |= bloodPressureFlagTimestampPresent
	}
	if rec.PulseRate != nil {
		flags |= bloodPressureFlagPulseRatePresent
	}
	if rec.UserID != nil {
		flags |= bloodPressureFlagUserIDPresent
	}
	if rec.MeasurementStatus != nil {
		flags |= bloodPressureFlagMeasurementStatusPresent
	}

	out := []byte{flags}
	for _, v := range []any{rec.Systolic, rec.Diastolic, rec.MeanArterialPressure} {
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
	if rec.PulseRate != nil {
		b, err := codec.SFloatTemplate{}.Encode(rec.PulseRate)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	if rec.UserID != nil {
		out = append(out, *rec.UserID)
	}
	if rec.MeasurementStatus != nil {
		names := make([]string, 0, len(rec.MeasurementStatus.Set))
		for name := range rec.MeasurementStatus.Set {
			names = append(names, name)
		}
		out = append(out, (codec.BitmapTemplate{Int: codec.IntTemplate{Width: 2}, Bits: bloodPressureStatusBits}).Encode(names)...)
	}

	return out, nil
}
