package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// HeartRateMeasurement is the decoded record for the Heart Rate
// Measurement characteristic (0x2A37).
type HeartRateMeasurement struct {
	HeartRate              float64 // bpm
	SensorContactSupported bool
	SensorContactDetected  bool
	EnergyExpended         *float64 // kilojoules, nil if not present
	RRIntervals            []float64 // seconds, empty if not present
}

const (
	heartRateFlagFormatUint16        = 1 << 0
	heartRateFlagSensorContactSupport = 1 << 1
	heartRateFlagSensorContactDetected = 1 << 2
	heartRateFlagEnergyExpended       = 1 << 3
	heartRateFlagRRIntervals         = 1 << 4
	heartRateFlagsReserved           = 0xE0
)

type heartRateCodec struct {
	codec.BaseCodec
}

func newHeartRateCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return heartRateCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c heartRateCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 2 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "heart rate measurement requires at least 2 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	offset := 1
	rec := HeartRateMeasurement{
		SensorContactSupported: flags&heartRateFlagSensorContactSupport != 0,
	}
	if rec.SensorContactSupported {
		rec.SensorContactDetected = flags&heartRateFlagSensorContactDetected != 0
	}

	if flags&heartRateFlagFormatUint16 != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "uint16 heart rate flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.HeartRate = float64(v)
		offset += 2
	} else {
		v, err := codec.IntTemplate{Width: 1}.Decode(raw[offset : offset+1])
		if err != nil {
			return codec.Failure(raw, err)
		}
		rec.HeartRate = float64(v)
		offset++
	}

	if flags&heartRateFlagEnergyExpended != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "energy expended flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		energy := float64(v)
		rec.EnergyExpended = &energy
		offset += 2
	}

	if flags&heartRateFlagRRIntervals != 0 {
		remaining := raw[offset:]
		if len(remaining)%2 != 0 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "RR-interval sequence has an odd trailing byte"))
		}
		rec.RRIntervals = make([]float64, 0, len(remaining)/2)
		for i := 0; i < len(remaining); i += 2 {
			v, err := codec.IntTemplate{Width: 2}.Decode(remaining[i : i+2])
			if err != nil {
				return codec.Failure(raw, err)
			}
			rec.RRIntervals = append(rec.RRIntervals, float64(v)/1024.0)
		}
	}

	if rec.HeartRate < 0 || rec.HeartRate > 65535 {
		return codec.Failure(raw, codec.NewError(codec.ErrorRangeViolation, "heart rate %v out of range", rec.HeartRate))
	}
	for _, rr := range rec.RRIntervals {
		if rr < 0 || rr > 65.535 {
			return codec.Failure(raw, codec.NewError(codec.ErrorRangeViolation, "RR interval %v out of range", rr))
		}
	}

	data := codec.Success(rec, "", raw)
	if reserved := flags & heartRateFlagsReserved; reserved != 0 {
		data.Warnings = append(data.Warnings, codec.NewError(codec.ErrorFlagsReserved, "reserved flag bits set: 0x%02x", reserved))
	}
	return data
}

func (c heartRateCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(HeartRateMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected HeartRateMeasurement")
	}

	var flags byte
	useUint16 := rec.HeartRate > 255
	if useUint16 {
		flags |= heartRateFlagFormatUint16
	}
	if rec.SensorContactSupported {
		flags |= heartRateFlagSensorContactSupport
		if rec.SensorContactDetected {
			flags |= heartRateFlagSensorContactDetected
		}
	}
	if rec.EnergyExpended != nil {
		flags |= heartRateFlagEnergyExpended
	}
	if len(rec.RRIntervals) > 0 {
		flags |= heartRateFlagRRIntervals
	}

	out := []byte{flags}
	if useUint16 {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.HeartRate))...)
	} else {
		out = append(out, codec.IntTemplate{Width: 1}.Encode(int64(rec.HeartRate))...)
	}
	if rec.EnergyExpended != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.EnergyExpended))...)
	}
	for _, rr := range rec.RRIntervals {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rr*1024))...)
	}
	return out, nil
}
