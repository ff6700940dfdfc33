package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// BodyCompositionMeasurement is the decoded record for Body Composition
// Measurement (0x2A9C). All mass fields are in kilograms and all length
// fields in metres when UnitsImperial is false, pounds/inches otherwise.
type BodyCompositionMeasurement struct {
	UnitsImperial      bool
	MeasurementResolutionBit bool
	BodyFatPercentage  float64
	Timestamp          any
	UserID             *byte
	BasalMetabolism    *float64
	MusclePercentage   *float64
	MuscleMass         *float64
	FatFreeMass        *float64
	SoftLeanMass       *float64
	BodyWaterMass      *float64
	Impedance          *float64
	Weight             *float64
	Height             *float64
}

const (
	bodyCompositionFlagUnitsImperial     = 1 << 0
	bodyCompositionFlagTimestampPresent  = 1 << 1
	bodyCompositionFlagUserIDPresent     = 1 << 2
	bodyCompositionFlagBasalMetabolism   = 1 << 3
	bodyCompositionFlagMusclePercentage  = 1 << 4
	bodyCompositionFlagMuscleMass        = 1 << 5
	bodyCompositionFlagFatFreeMass       = 1 << 6
	bodyCompositionFlagSoftLeanMass      = 1 << 7
	bodyCompositionFlagBodyWaterMass     = 1 << 8
	bodyCompositionFlagImpedance         = 1 << 9
	bodyCompositionFlagWeight            = 1 << 10
	bodyCompositionFlagHeight            = 1 << 11
	bodyCompositionFlagMultiplePacket    = 1 << 12
)

type bodyCompositionMeasurementCodec struct {
	codec.BaseCodec
}

func newBodyCompositionMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return bodyCompositionMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c bodyCompositionMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 4 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "body composition measurement requires at least 4 bytes, got %d", len(raw)))
	}

	flagsRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[0:2])
	if err != nil {
		return codec.Failure(raw, err)
	}
	flags := uint32(flagsRaw)
	rec := BodyCompositionMeasurement{
		UnitsImperial: flags&bodyCompositionFlagUnitsImperial != 0,
	}

	massResolution, heightResolution := 0.005, 0.001
	if rec.UnitsImperial {
		massResolution, heightResolution = 0.01, 0.1
	}

	fatRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[2:4])
	if err != nil {
		return codec.Failure(raw, err)
	}
	rec.BodyFatPercentage = float64(fatRaw) * 0.1
	offset := 4

	readMass := func() (float64, *codec.Error) {
		if len(raw) < offset+2 {
			return 0, codec.NewError(codec.ErrorLengthViolation, "mass field flag set but bytes exhausted")
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return 0, err
		}
		offset += 2
		return float64(v) * massResolution, nil
	}

	if flags&bodyCompositionFlagTimestampPresent != 0 {
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
	if flags&bodyCompositionFlagUserIDPresent != 0 {
		if len(raw) < offset+1 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "user id flag set but bytes exhausted"))
		}
		id := raw[offset]
		rec.UserID = &id
		offset++
	}
	if flags&bodyCompositionFlagBasalMetabolism != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "basal metabolism flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		basal := float64(v)
		rec.BasalMetabolism = &basal
		offset += 2
	}
	if flags&bodyCompositionFlagMusclePercentage != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "muscle percentage flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		pct := float64(v) * 0.1
		rec.MusclePercentage = &pct
		offset += 2
	}
	if flags&bodyCompositionFlagMuscleMass != 0 {
		v, err := readMass()
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.MuscleMass = &v
	}
	if flags&bodyCompositionFlagFatFreeMass != 0 {
		v, err := readMass()
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.FatFreeMass = &v
	}
	if flags&bodyCompositionFlagSoftLeanMass != 0 {
		v, err := readMass()
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.SoftLeanMass = &v
	}
	if flags&bodyCompositionFlagBodyWaterMass != 0 {
		v, err := readMass()
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.BodyWaterMass = &v
	}
	if flags&bodyCompositionFlagImpedance != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "impedance flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		impedance := float64(v) * 0.1
		rec.Impedance = &impedance
		offset += 2
	}
	if flags&bodyCompositionFlagWeight != 0 {
		v, err := readMass()
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.Weight = &v
	}
	if flags&bodyCompositionFlagHeight != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "height flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		height := float64(v) * heightResolution
		rec.Height = &height
		offset += 2
	}

	return codec.Success(rec, "%", raw)
}

func (c bodyCompositionMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(BodyCompositionMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected BodyCompositionMeasurement")
	}

	var flags uint32
	if rec.UnitsImperial {
		flags |= bodyCompositionFlagUnitsImperial
	}
	if rec.Timestamp != nil {
		flags |= bodyCompositionFlagTimestampPresent
	}
	if rec.UserID != nil {
		flags |= bodyCompositionFlagUserIDPresent
	}
	if rec.BasalMetabolism != nil {
		flags |= bodyCompositionFlagBasalMetabolism
	}
	if rec.MusclePercentage != nil {
		flags |= bodyCompositionFlagMusclePercentage
	}
	if rec.MuscleMass != nil {
		flags |= bodyCompositionFlagMuscleMass
	}
	if rec.FatFreeMass != nil {
		flags |= bodyCompositionFlagFatFreeMass
	}
	if rec.SoftLeanMass != nil {
		flags |= bodyCompositionFlagSoftLeanMass
	}
	if rec.BodyWaterMass != nil {
		flags |= bodyCompositionFlagBodyWaterMass
	}
	if rec.Impedance != nil {
		flags |= bodyCompositionFlagImpedance
	}
	if rec.Weight != nil {
		flags |= bodyCompositionFlagWeight
	}
	if rec.Height != nil {
		flags |= bodyCompositionFlagHeight
	}

	massResolution, heightResolution := 0.005, 0.001
	if rec.UnitsImperial {
		massResolution, heightResolution = 0.01, 0.1
	}

	out := codec.IntTemplate{Width: 2}.Encode(int64(flags))
	out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.BodyFatPercentage/0.1+0.5))...)

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
	if rec.BasalMetabolism != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.BasalMetabolism))...)
	}
	if rec.MusclePercentage != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.MusclePercentage/0.1+0.5))...)
	}
	for _, mass := range []*float64{rec.MuscleMass, rec.FatFreeMass, rec.SoftLeanMass, rec.BodyWaterMass} {
		if mass != nil {
			out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*mass/massResolution+0.5))...)
		}
	}
	if rec.Impedance != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.Impedance/0.1+0.5))...)
	}
	if rec.Weight != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.Weight/massResolution+0.5))...)
	}
	if rec.Height != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.Height/heightResolution+0.5))...)
	}

	return out, nil
}
