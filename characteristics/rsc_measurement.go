package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// RSCMeasurement is the decoded record for RSC Measurement (0x2A53):
// Running Speed and Cadence. InstantaneousSpeed is in m/s,
// InstantaneousStrideLength in metres, TotalDistance in metres.
type RSCMeasurement struct {
	InstantaneousSpeedStrideCalibrated bool
	IsRunning           bool
	InstantaneousSpeed  float64
	InstantaneousCadence uint8
	InstantaneousStrideLength *float64
	TotalDistance       *float64
}

const (
	rscFlagStrideLengthPresent = 1 << 0
	rscFlagTotalDistancePresent = 1 << 1
	rscFlagWalkingOrRunning     = 1 << 2
)

type rscMeasurementCodec struct {
	codec.BaseCodec
}

func newRSCMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return rscMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c rscMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 4 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "rsc measurement requires at least 4 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	rec := RSCMeasurement{IsRunning: flags&rscFlagWalkingOrRunning != 0}

	speedRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[1:3])
	if err != nil {
		return codec.Failure(raw, err)
	}
	rec.InstantaneousSpeed = float64(speedRaw) / 256.0
	rec.InstantaneousCadence = raw[3]
	offset := 4

	if flags&rscFlagStrideLengthPresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "stride length flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		stride := float64(v) / 100.0
		rec.InstantaneousStrideLength = &stride
		offset += 2
	}

	if flags&rscFlagTotalDistancePresent != 0 {
		if len(raw) < offset+4 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "total distance flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 4}.Decode(raw[offset : offset+4])
		if err != nil {
			return codec.Failure(raw, err)
		}
		distance := float64(v) / 10.0
		rec.TotalDistance = &distance
		offset += 4
	}

	return codec.Success(rec, "m/s", raw)
}

func (c rscMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(RSCMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected RSCMeasurement")
	}

	var flags byte
	if rec.InstantaneousStrideLength != nil {
		flags |= rscFlagStrideLengthPresent
	}
	if rec.TotalDistance != nil {
		flags |= rscFlagTotalDistancePresent
	}
	if rec.IsRunning {
		flags |= rscFlagWalkingOrRunning
	}

	out := []byte{flags}
	out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.InstantaneousSpeed*256.0+0.5))...)
	out = append(out, rec.InstantaneousCadence)

	if rec.InstantaneousStrideLength != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.InstantaneousStrideLength*100.0+0.5))...)
	}
	if rec.TotalDistance != nil {
		out = append(out, codec.IntTemplate{Width: 4}.Encode(int64(*rec.TotalDistance*10.0+0.5))...)
	}

	return out, nil
}
