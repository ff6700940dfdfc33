package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// WeightMeasurement is the decoded record for Weight Measurement (0x2A9D).
// Weight is in kilograms when UnitsImperial is false, pounds otherwise.
type WeightMeasurement struct {
	UnitsImperial bool
	Weight        float64
	Timestamp     any
	UserID        *byte
	BMI           *float64
	Height        *float64
}

const (
	weightFlagUnitsImperial = 1 << 0
	weightFlagTimestampPresent = 1 << 1
	weightFlagUserIDPresent    = 1 << 2
	weightFlagBMIHeightPresent = 1 << 3
)

type weightMeasurementCodec struct {
	codec.BaseCodec
}

func newWeightMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return weightMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c weightMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 3 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "weight measurement requires at least 3 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	rec := WeightMeasurement{UnitsImperial: flags&weightFlagUnitsImperial != 0}

	weightResolution := 0.005
	if rec.UnitsImperial {
		weightResolution = 0.01
	}
	raw16, err := codec.IntTemplate{Width: 2}.Decode(raw[1:3])
	if err != nil {
		return codec.Failure(raw, err)
	}
	rec.Weight = float64(raw16) * weightResolution
	offset := 3

	if flags&weightFlagTimestampPresent != 0 {
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

	if flags&weightFlagUserIDPresent != 0 {
		if len(raw) < offset+1 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "user id flag set but bytes exhausted"))
		}
		id := raw[offset]
		rec.UserID = &id
		offset++
	}

	if flags&weightFlagBMIHeightPresent != 0 {
		if len(raw) < offset+4 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "bmi/height flag set but bytes exhausted"))
		}
		bmiRaw, bErr := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if bErr != nil {
			return codec.Failure(raw, bErr)
		}
		bmi := float64(bmiRaw) * 0.1
		rec.BMI = &bmi

		heightResolution := 0.001
		if rec.UnitsImperial {
			heightResolution = 0.1
		}
		heightRaw, hErr := codec.IntTemplate{Width: 2}.Decode(raw[offset+2 : offset+4])
		if hErr != nil {
			return codec.Failure(raw, hErr)
		}
		height := float64(heightRaw) * heightResolution
		rec.Height = &height
		offset += 4
	}

	unit := "kg"
	if rec.UnitsImperial {
		unit = "lb"
	}
	return codec.Success(rec, unit, raw)
}

func (c weightMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(WeightMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected WeightMeasurement")
	}

	var flags byte
	if rec.UnitsImperial {
		flags |= weightFlagUnitsImperial
	}
	if rec.Timestamp != nil {
		flags |= weightFlagTimestampPresent
	}
	if rec.UserID != nil {
		flags |= weightFlagUserIDPresent
	}
	if rec.BMI != nil && rec.Height != nil {
		flags |= weightFlagBMIHeightPresent
	}

	weightResolution := 0.005
	if rec.UnitsImperial {
		weightResolution = 0.01
	}
	out := []byte{flags}
	out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.Weight/weightResolution+0.5))...)

	if rec.Timestamp != nil {
		t, ok := asTime(rec.Timestamp)
		if !ok {
			return nil, codec.NewError(codec.ErrorTypeMismatch, "expected time.Time timestamp")
		}
		out = append(out, codec.TimeTemplate{}.Encode(t)...)
	}
	if rec.UserID != nil {
		out = append(out, *rec.UserID)
	}
	if rec.BMI != nil && rec.Height != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.BMI/0.1+0.5))...)
		heightResolution := 0.001
		if rec.UnitsImperial {
			heightResolution = 0.1
		}
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.Height/heightResolution+0.5))...)
	}

	return out, nil
}
