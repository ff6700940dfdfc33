package codec

// Vector is a fixed-component numeric tuple (e.g. a 3D accelerometer
// reading, or the 2-component speed/heading pair in Location and Speed).
type Vector []float64

// VectorTemplate decodes/encodes a fixed number of equally-scaled
// components, each using the same underlying Component template.
type VectorTemplate struct {
	Component ScaledTemplate
	Count     int
}

// Decode splits data into Count equal slices and decodes each with the
// Component template.
func (t VectorTemplate) Decode(data []byte) (Vector, *Error) {
	width := t.Component.Int.Width
	if len(data) != width*t.Count {
		return nil, NewError(ErrorLengthViolation, "vector template expects %d bytes, got %d", width*t.Count, len(data))
	}

	out := make(Vector, t.Count)
	for i := 0; i < t.Count; i++ {
		v, err := t.Component.Decode(data[i*width : (i+1)*width])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Encode concatenates the per-component encodings.
func (t VectorTemplate) Encode(v Vector) ([]byte, *Error) {
	if len(v) != t.Count {
		return nil, NewError(ErrorTypeMismatch, "vector template expects %d components, got %d", t.Count, len(v))
	}

	out := make([]byte, 0, t.Component.Int.Width*t.Count)
	for _, component := range v {
		bytes, err := t.Component.Encode(component)
		if err != nil {
			return nil, err
		}
		out = append(out, bytes...)
	}
	return out, nil
}
