package characteristics

import (
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// TemperatureMeasurement is the decoded record for Temperature Measurement
// (0x2A1C). Temperature is in Celsius when UnitIsFahrenheit is false.
type TemperatureMeasurement struct {
	UnitIsFahrenheit bool
	Temperature      float64
	Timestamp        any
	TemperatureType  *int64
}

const (
	temperatureFlagUnitFahrenheit   = 1 << 0
	temperatureFlagTimestampPresent = 1 << 1
	temperatureFlagTypePresent      = 1 << 2
)

var temperatureTypeNames = map[int64]string{
	1: "Armpit",
	2: "Body (general)",
	3: "Ear (usually ear lobe)",
	4: "Finger",
	5: "Gastro-intestinal Tract",
	6: "Mouth",
	7: "Rectum",
	8: "Toe",
	9: "Tympanum (ear drum)",
}

type temperatureMeasurementCodec struct {
	codec.BaseCodec
}

func newTemperatureMeasurementCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return temperatureMeasurementCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c temperatureMeasurementCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 5 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "temperature measurement requires at least 5 bytes, got %d", len(raw)))
	}

	flags := raw[0]
	rec := TemperatureMeasurement{UnitIsFahrenheit: flags&temperatureFlagUnitFahrenheit != 0}

	v, err := codec.FloatTemplate{}.Decode(raw[1:5])
	if err != nil {
		return codec.Failure(raw, err)
	}
	if f, ok := v.(float64); ok {
		rec.Temperature = f
	}
	offset := 5

	if flags&temperatureFlagTimestampPresent != 0 {
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

	if flags&temperatureFlagTypePresent != 0 {
		if len(raw) < offset+1 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "temperature type flag set but bytes exhausted"))
		}
		t := int64(raw[offset])
		rec.TemperatureType = &t
		offset++
	}

	unit := "Celsius"
	if rec.UnitIsFahrenheit {
		unit = "Fahrenheit"
	}
	return codec.Success(rec, unit, raw)
}

func (c temperatureMeasurementCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(TemperatureMeasurement)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected TemperatureMeasurement")
	}

	var flags byte
	if rec.UnitIsFahrenheit {
		flags |= temperatureFlagUnitFahrenheit
	}
	if rec.Timestamp != nil {
		flags |= temperatureFlagTimestampPresent
	}
	if rec.TemperatureType != nil {
		flags |= temperatureFlagTypePresent
	}

	out := []byte{flags}
	tempBytes, err := codec.FloatTemplate{}.Encode(rec.Temperature)
	if err != nil {
		return nil, err
	}
	out = append(out, tempBytes...)

	if rec.Timestamp != nil {
		t, ok := asTime(rec.Timestamp)
		if !ok {
			return nil, codec.NewError(codec.ErrorTypeMismatch, "expected time.Time timestamp")
		}
		out = append(out, codec.TimeTemplate{}.Encode(t)...)
	}
	if rec.TemperatureType != nil {
		out = append(out, byte(*rec.TemperatureType))
	}

	return out, nil
}
