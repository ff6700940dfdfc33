package codec

import "math"

// sfloatMantissaNaN etc. are the reserved 12-bit mantissa codes defined by
// IEEE-11073 SFLOAT, checked against the raw (not sign-extended) mantissa
// field regardless of the accompanying exponent.
const (
	sfloatMantissaNaN         = 0x07FF
	sfloatMantissaPosInfinity = 0x0800
	sfloatMantissaNegInfinity = 0x0801
	sfloatMantissaNRes        = 0x0802
	sfloatMantissaReserved    = 0x07FE
)

// Reserved marks an IEEE-11073 reserved-for-future-use code (SFLOAT 0x07FE
// and the FLOAT32 equivalent). It is carried as a distinct value, never
// mixed with valid numbers.
type Reserved struct{}

// SFloatTemplate decodes/encodes the IEEE-11073 16-bit SFLOAT medical
// float format used throughout the health/fitness characteristics.
type SFloatTemplate struct{}

// Decode returns one of: float64 (ordinary value), math.NaN(), math.Inf(±1),
// NotPresent{Reason: "NRes"}, or Reserved{}.
func (SFloatTemplate) Decode(data []byte) (any, *Error) {
	raw, err := IntTemplate{Width: 2}.Decode(data)
	if err != nil {
		return nil, err
	}
	u := uint16(raw)
	mantissaRaw := u & 0x0FFF

	switch mantissaRaw {
	case sfloatMantissaNaN:
		return math.NaN(), nil
	case sfloatMantissaPosInfinity:
		return math.Inf(1), nil
	case sfloatMantissaNegInfinity:
		return math.Inf(-1), nil
	case sfloatMantissaNRes:
		return NotPresent{Reason: "NRes"}, nil
	case sfloatMantissaReserved:
		return Reserved{}, nil
	}

	mantissa := signExtend(int64(mantissaRaw), 12)
	exponent := signExtend(int64(u>>12), 4)
	return float64(mantissa) * math.Pow(10, float64(exponent)), nil
}

// Encode selects the (exponent, mantissa) pair with mantissa in
// [-2048, 2047] via fitDecimal: the smallest |exponent| that represents the
// value exactly, else the most precise pair that fits. NaN/±Inf/NRes map to
// their reserved codes.
func (SFloatTemplate) Encode(value any) ([]byte, *Error) {
	switch v := value.(type) {
	case NotPresent:
		return IntTemplate{Width: 2}.Encode(sfloatMantissaNRes), nil
	case Reserved:
		return IntTemplate{Width: 2}.Encode(sfloatMantissaReserved), nil
	case float64:
		if math.IsNaN(v) {
			return IntTemplate{Width: 2}.Encode(sfloatMantissaNaN), nil
		}
		if math.IsInf(v, 1) {
			return IntTemplate{Width: 2}.Encode(sfloatMantissaPosInfinity), nil
		}
		if math.IsInf(v, -1) {
			return IntTemplate{Width: 2}.Encode(sfloatMantissaNegInfinity), nil
		}
		mantissa, exponent, ok := fitDecimal(v, -2048, 2047, -8, 7)
		if !ok {
			return nil, NewError(ErrorRangeViolation, "value %v cannot be represented as an SFLOAT", v)
		}
		raw := (uint16(exponent) << 12) | (uint16(mantissa) & 0x0FFF)
		return IntTemplate{Width: 2}.Encode(int64(raw)), nil
	default:
		return nil, NewError(ErrorTypeMismatch, "SFLOAT encode expects float64, NotPresent, or Reserved, got %T", value)
	}
}

// FloatTemplate decodes/encodes the IEEE-11073 32-bit FLOAT format: an
// 8-bit signed exponent and a 24-bit signed mantissa.
type FloatTemplate struct{}

const (
	float32MantissaNaN         = 0x007FFFFF
	float32MantissaPosInfinity = 0x00800000
	float32MantissaNegInfinity = 0x00800001
	float32MantissaNRes        = 0x00800002
	float32MantissaReserved    = 0x007FFFFE
)

func (FloatTemplate) Decode(data []byte) (any, *Error) {
	if len(data) != 4 {
		return nil, NewError(ErrorLengthViolation, "FLOAT template expects 4 bytes, got %d", len(data))
	}
	mantissaRaw, err := IntTemplate{Width: 3}.Decode(data[0:3])
	if err != nil {
		return nil, err
	}
	exponentRaw, err := IntTemplate{Width: 1, Signed: true}.Decode(data[3:4])
	if err != nil {
		return nil, err
	}

	switch uint32(mantissaRaw) & 0x00FFFFFF {
	case float32MantissaNaN:
		return math.NaN(), nil
	case float32MantissaPosInfinity:
		return math.Inf(1), nil
	case float32MantissaNegInfinity:
		return math.Inf(-1), nil
	case float32MantissaNRes:
		return NotPresent{Reason: "NRes"}, nil
	case float32MantissaReserved:
		return Reserved{}, nil
	}

	mantissa := signExtend(mantissaRaw, 24)
	return float64(mantissa) * math.Pow(10, float64(exponentRaw)), nil
}

func (FloatTemplate) Encode(value any) ([]byte, *Error) {
	var mantissaCode int64
	var exponent int64

	switch v := value.(type) {
	case NotPresent:
		mantissaCode = float32MantissaNRes
	case Reserved:
		mantissaCode = float32MantissaReserved
	case float64:
		if math.IsNaN(v) {
			mantissaCode = float32MantissaNaN
		} else if math.IsInf(v, 1) {
			mantissaCode = float32MantissaPosInfinity
		} else if math.IsInf(v, -1) {
			mantissaCode = float32MantissaNegInfinity
		} else {
			m, e, ok := fitDecimal(v, -8388608, 8388607, -128, 127)
			if !ok {
				return nil, NewError(ErrorRangeViolation, "value %v cannot be represented as a FLOAT32", v)
			}
			mantissaCode, exponent = m, e
		}
	default:
		return nil, NewError(ErrorTypeMismatch, "FLOAT32 encode expects float64, NotPresent, or Reserved, got %T", value)
	}

	out := make([]byte, 4)
	copy(out[0:3], IntTemplate{Width: 3}.Encode(mantissaCode))
	out[3] = IntTemplate{Width: 1, Signed: true}.Encode(exponent)[0]
	return out, nil
}

// signExtend treats the low `bits` bits of v as a two's-complement number
// and sign-extends to a full int64.
func signExtend(v int64, bits int) int64 {
	shift := 64 - bits
	return v << shift >> shift
}

// fitDecimal finds the (mantissa, exponent) pair with exponent in
// [minExp, maxExp] and mantissa in [minMantissa, maxMantissa] such that
// mantissa*10^exponent best represents v: among pairs that reproduce v
// exactly it returns the one with the smallest |exponent|; when none does,
// it returns the smallest exponent whose mantissa fits (the most precise).
func fitDecimal(v float64, minMantissa, maxMantissa int64, minExp, maxExp int64) (mantissa, exponent int64, ok bool) {
	for exp := int64(0); exp >= minExp || exp <= maxExp; {
		for _, e := range []int64{exp, -exp} {
			if e < minExp || e > maxExp {
				continue
			}
			m := math.Round(v / math.Pow(10, float64(e)))
			if m < float64(minMantissa) || m > float64(maxMantissa) {
				continue
			}
			if math.Abs(m*math.Pow(10, float64(e))-v) <= 1e-9*math.Abs(v) {
				return int64(m), e, true
			}
			if !ok || e < exponent {
				mantissa, exponent, ok = int64(m), e, true
			}
		}
		if exp == 0 {
			exp = 1
		} else {
			exp++
		}
		if exp > maxExp && -exp < minExp {
			break
		}
	}
	return mantissa, exponent, ok
}
