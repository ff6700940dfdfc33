// Package characteristics wires the assigned-numbers registry to concrete
// CharacteristicCodec implementations: a generic builder for
// single-field numeric/scaled/enumeration characteristics, and bespoke
// decoders for the flag-driven, multi-field, and control-point
// characteristics the generic builder cannot express.
package characteristics

import (
	"strings"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// simpleCodec wraps a single reusable template (int, scaled, or enum) for
// a characteristic whose automation schema declares exactly one field.
// It is how every plain numeric/scaled/enumeration characteristic in the
// assigned-numbers set (Battery Level, Temperature, Humidity, Pressure,
// Alert Level, Gender, Body Sensor Location, Barometric Pressure Trend,
// ...) gets a codec, without writing one struct per characteristic.
type simpleCodec struct {
	codec.BaseCodec
	decode func(raw []byte) (any, *codec.Error)
	encode func(value any) ([]byte, *codec.Error)
	unit   string
}

func (c simpleCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if err := codec.ValidateLength(raw, c.Spec()); err != nil {
		return codec.Failure(raw, err)
	}
	value, err := c.decode(raw)
	if err != nil {
		return codec.Failure(raw, err)
	}

	if _, notPresent := codec.IsNotPresent(value); notPresent {
		return codec.Success(value, c.unit, raw)
	}
	if err := codec.ValidateType(value, c.Spec().ValueType); err != nil {
		return codec.Failure(raw, err)
	}
	if f, ok := value.(float64); ok {
		if err := codec.ValidateRange(f, ctx, nil, c.Spec()); err != nil {
			return codec.Failure(raw, err)
		}
	}
	return codec.Success(value, c.unit, raw)
}

func (c simpleCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	return c.encode(value)
}

// buildSimpleCodec constructs a simpleCodec from spec's single field, or
// reports false when the field shape needs a bespoke decoder instead (more
// than one field, or a structured/bytes value type).
func buildSimpleCodec(spec *assignednum.CharacteristicSpec) (codec.CharacteristicCodec, bool) {
	if len(spec.Fields) != 1 {
		return nil, false
	}
	field := spec.Fields[0]
	intTemplate := intTemplateForDataType(field.DataType, field.SizeBytes)
	unit := symbolForUnitID(field.UnitID)

	if spec.ValueType == assignednum.ValueBitmap && len(field.Bits) > 0 {
		bitmapTemplate := codec.BitmapTemplate{Int: intTemplate, Bits: field.Bits}
		return simpleCodec{
			BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics),
			decode: func(raw []byte) (any, *codec.Error) {
				// Variable-length Feature characteristics (e.g. PLX Features)
				// carry their bitmap in the first Width bytes; trailing bytes
				// are characteristic-specific flags this generic builder
				// does not interpret.
				if len(raw) > intTemplate.Width {
					raw = raw[:intTemplate.Width]
				}
				return bitmapTemplate.Decode(raw)
			},
			encode: func(value any) ([]byte, *codec.Error) {
				b, ok := value.(codec.Bitmap)
				if !ok {
					return nil, codec.NewError(codec.ErrorTypeMismatch, "expected codec.Bitmap")
				}
				names := make([]string, 0, len(b.Set))
				for name := range b.Set {
					names = append(names, name)
				}
				return bitmapTemplate.Encode(names), nil
			},
			unit: unit,
		}, true
	}

	switch spec.ValueType {
	case assignednum.ValueEnumeration:
		if len(field.Enum) == 0 {
			return nil, false
		}
		variants := make(map[int64]string, len(field.Enum))
		for raw, name := range field.Enum {
			variants[int64(raw)] = name
		}
		enumTemplate := codec.EnumTemplate{Int: intTemplate, Variants: variants, OnUnknown: codec.UnknownEnumPassthrough}
		return simpleCodec{
			BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics),
			decode: func(raw []byte) (any, *codec.Error) {
				v, err := enumTemplate.Decode(raw)
				return v, err
			},
			encode: func(value any) ([]byte, *codec.Error) {
				ev, ok := value.(codec.EnumValue)
				if !ok {
					return nil, codec.NewError(codec.ErrorTypeMismatch, "expected codec.EnumValue")
				}
				return enumTemplate.Encode(ev.Raw), nil
			},
			unit: unit,
		}, true

	case assignednum.ValueNumeric:
		sentinel := field.Sentinel
		if sentinel != nil && intTemplate.Width > 0 {
			// Compare in the field's own width and signedness, so a sentinel
			// written as raw bits (0xFFFF) and as a signed value (-1) match
			// the same sint16 code.
			normalized, _ := intTemplate.Decode(intTemplate.Encode(*sentinel))
			sentinel = &normalized
		}

		if field.Resolution == 0 {
			return simpleCodec{
				BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics),
				decode: func(raw []byte) (any, *codec.Error) {
					v, err := intTemplate.Decode(raw)
					if err != nil {
						return nil, err
					}
					if sentinel != nil && v == *sentinel {
						return codec.NotPresent{Reason: "sentinel"}, nil
					}
					return float64(v), nil
				},
				encode: func(value any) ([]byte, *codec.Error) {
					if _, ok := value.(codec.NotPresent); ok && sentinel != nil {
						return intTemplate.Encode(*sentinel), nil
					}
					f, ok := value.(float64)
					if !ok {
						return nil, codec.NewError(codec.ErrorTypeMismatch, "expected float64")
					}
					return intTemplate.Encode(int64(f)), nil
				},
				unit: unit,
			}, true
		}

		scaled := codec.ScaledTemplate{Int: intTemplate, Resolution: field.Resolution, Offset: field.Offset}
		return simpleCodec{
			BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics),
			decode: func(raw []byte) (any, *codec.Error) {
				if sentinel != nil {
					v, err := intTemplate.Decode(raw)
					if err != nil {
						return nil, err
					}
					if v == *sentinel {
						return codec.NotPresent{Reason: "sentinel"}, nil
					}
				}
				return scaled.Decode(raw)
			},
			encode: func(value any) ([]byte, *codec.Error) {
				if _, ok := value.(codec.NotPresent); ok && sentinel != nil {
					return intTemplate.Encode(*sentinel), nil
				}
				f, ok := value.(float64)
				if !ok {
					return nil, codec.NewError(codec.ErrorTypeMismatch, "expected float64")
				}
				return scaled.Encode(f)
			},
			unit: unit,
		}, true
	}

	return nil, false
}

func intTemplateForDataType(dt assignednum.DataType, size int) codec.IntTemplate {
	switch dt {
	case assignednum.DataTypeUint8:
		return codec.IntTemplate{Width: 1}
	case assignednum.DataTypeUint16:
		return codec.IntTemplate{Width: 2}
	case assignednum.DataTypeUint24:
		return codec.IntTemplate{Width: 3}
	case assignednum.DataTypeUint32:
		return codec.IntTemplate{Width: 4}
	case assignednum.DataTypeSint8:
		return codec.IntTemplate{Width: 1, Signed: true}
	case assignednum.DataTypeSint16:
		return codec.IntTemplate{Width: 2, Signed: true}
	case assignednum.DataTypeSint24:
		return codec.IntTemplate{Width: 3, Signed: true}
	case assignednum.DataTypeSint32:
		return codec.IntTemplate{Width: 4, Signed: true}
	default:
		if size > 0 {
			return codec.IntTemplate{Width: size}
		}
		return codec.IntTemplate{Width: 1}
	}
}

// symbolForUnitID derives a short display symbol from a unit's reverse-DNS
// id, mirroring the Loader's own unit-symbol table for the units this
// package's template-driven characteristics actually use.
func symbolForUnitID(id string) string {
	switch id {
	case "org.bluetooth.unit.percentage":
		return "%"
	case "org.bluetooth.unit.thermodynamic_temperature.degree_celsius":
		return "°C"
	case "org.bluetooth.unit.pressure.pascal":
		return "Pa"
	case "org.bluetooth.unit.length.metre":
		return "m"
	case "org.bluetooth.unit.velocity.metres_per_second":
		return "m/s"
	case "":
		return ""
	default:
		idx := strings.LastIndex(id, ".")
		if idx < 0 {
			return id
		}
		return id[idx+1:]
	}
}
