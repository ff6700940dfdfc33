package codec

import "math"

// ScaledTemplate decodes a fixed-width integer into a real value via
// raw*Resolution+Offset, and encodes the inverse. Rounding on encode is
// half-to-even (banker's rounding), applied before delegating to the
// underlying IntTemplate; a value that rounds outside the int template's
// representable range is reported as RangeViolation.
type ScaledTemplate struct {
	Int        IntTemplate
	Resolution float64
	Offset     float64
}

// Decode returns raw*Resolution+Offset as a float64.
func (t ScaledTemplate) Decode(data []byte) (float64, *Error) {
	raw, err := t.Int.Decode(data)
	if err != nil {
		return 0, err
	}
	return float64(raw)*t.Resolution + t.Offset, nil
}

// Encode rounds (v-Offset)/Resolution half-to-even and delegates to the
// int template. Returns RangeViolation if the rounded value does not fit
// the declared width/sign.
func (t ScaledTemplate) Encode(v float64) ([]byte, *Error) {
	raw := math.RoundToEven((v - t.Offset) / t.Resolution)

	min, max := t.Int.Bounds()
	if raw < float64(min) || raw > float64(max) {
		return nil, NewError(ErrorRangeViolation, "scaled value %v encodes to raw %v, outside [%d, %d]", v, raw, min, max)
	}
	return t.Int.Encode(int64(raw)), nil
}
