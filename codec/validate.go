package codec

import (
	"math"

	"github.com/srgg/sigdb/internal/assignednum"
)

// ValidRangeDescriptorUUID is the GATT Valid Range descriptor (0x2906).
// When present in a decode Context, it takes precedence over any
// class-declared or YAML-declared range for that characteristic.
const ValidRangeDescriptorUUID = "2906"

// ValidRange is a declared [Min, Max] bound, regardless of which of the
// three precedence levels it came from.
type ValidRange struct {
	Min float64
	Max float64
}

// ValidateLength checks data's length against spec's declared length
// constraints (fixed ExpectedLength, or Min/MaxLength for variable-length
// fields). A spec with no length constraints declared accepts any length.
func ValidateLength(data []byte, spec *assignednum.CharacteristicSpec) *Error {
	if spec.ExpectedLength > 0 && len(data) != spec.ExpectedLength {
		return NewError(ErrorLengthViolation, "%s expects %d bytes, got %d", spec.Name, spec.ExpectedLength, len(data))
	}
	if spec.MinLength > 0 && len(data) < spec.MinLength {
		return NewError(ErrorLengthViolation, "%s expects at least %d bytes, got %d", spec.Name, spec.MinLength, len(data))
	}
	if spec.MaxLength > 0 && len(data) > spec.MaxLength {
		return NewError(ErrorLengthViolation, "%s expects at most %d bytes, got %d", spec.Name, spec.MaxLength, len(data))
	}
	return nil
}

// IsNotPresent reports whether a decoded value is a sentinel "not present"
// outcome rather than an ordinary value. Callers run this check before type
// and range checks: a NotPresent value skips both, since it is not a
// number or string to be range- or type-checked.
func IsNotPresent(value any) (NotPresent, bool) {
	np, ok := value.(NotPresent)
	return np, ok
}

// ValidateType checks that value is assignable to the spec's declared
// ValueType, reporting ErrorTypeMismatch otherwise. NotPresent values are
// never passed here; callers short-circuit on IsNotPresent first.
func ValidateType(value any, want assignednum.ValueType) *Error {
	var got assignednum.ValueType
	switch value.(type) {
	case float64, int64:
		got = assignednum.ValueNumeric
	case string:
		got = assignednum.ValueString
	case Bitmap:
		got = assignednum.ValueBitmap
	case EnumValue:
		got = assignednum.ValueEnumeration
	case []byte:
		got = assignednum.ValueBytes
	case Vector:
		got = assignednum.ValueStructured
	default:
		got = assignednum.ValueUnknown
	}

	if want != "" && got != assignednum.ValueUnknown && got != want {
		return NewError(ErrorTypeMismatch, "expected %s value, decoded %s", want, got)
	}
	return nil
}

// ValidateRange checks a numeric value against the three-level precedence
// chain: a Valid Range descriptor recorded in ctx, then a class-declared
// range (e.g. a bespoke decoder narrowing a sub-field), then the
// YAML-declared spec.MinValue/MaxValue. The first level present wins; no
// declared bound at any level means the value is unconstrained.
func ValidateRange(value float64, ctx *Context, classRange *ValidRange, spec *assignednum.CharacteristicSpec) *Error {
	if ctx != nil {
		if raw, ok := ctx.Descriptor(ValidRangeDescriptorUUID); ok {
			if vr, ok := raw.(ValidRange); ok {
				return checkBounds(value, vr.Min, vr.Max)
			}
		}
	}

	if classRange != nil {
		return checkBounds(value, classRange.Min, classRange.Max)
	}

	if spec != nil && (spec.MinValue != nil || spec.MaxValue != nil) {
		min, max := math.Inf(-1), math.Inf(1)
		if spec.MinValue != nil {
			min = *spec.MinValue
		}
		if spec.MaxValue != nil {
			max = *spec.MaxValue
		}
		return checkBounds(value, min, max)
	}

	return nil
}

func checkBounds(value, min, max float64) *Error {
	if value < min || value > max {
		return NewError(ErrorRangeViolation, "value %v outside declared range [%v, %v]", value, min, max)
	}
	return nil
}
