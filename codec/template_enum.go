package codec

// UnknownEnumPolicy controls EnumTemplate behavior when the decoded raw
// value has no registered variant name.
type UnknownEnumPolicy int

const (
	// UnknownEnumError fails the decode with ErrorUnknownEnumValue.
	UnknownEnumError UnknownEnumPolicy = iota
	// UnknownEnumPassthrough returns the raw integer value, unnamed.
	UnknownEnumPassthrough
)

// EnumTemplate decodes a fixed-width integer into one of a declared set of
// named variants (e.g. Body Sensor Location, Gender).
type EnumTemplate struct {
	Int      IntTemplate
	Variants map[int64]string
	OnUnknown UnknownEnumPolicy
}

// EnumValue is the result of a successful enum decode: the raw integer and
// its resolved name, when known.
type EnumValue struct {
	Raw   int64
	Name  string
	Known bool
}

// Decode resolves the raw integer against Variants.
func (t EnumTemplate) Decode(data []byte) (EnumValue, *Error) {
	raw, err := t.Int.Decode(data)
	if err != nil {
		return EnumValue{}, err
	}

	name, known := t.Variants[raw]
	if !known {
		if t.OnUnknown == UnknownEnumError {
			return EnumValue{}, NewError(ErrorUnknownEnumValue, "unrecognized enum value %d", raw)
		}
		return EnumValue{Raw: raw, Known: false}, nil
	}
	return EnumValue{Raw: raw, Name: name, Known: true}, nil
}

// Encode writes the raw integer backing value. Variant names are not
// accepted here; callers resolve a name to its raw code before encoding.
func (t EnumTemplate) Encode(raw int64) []byte {
	return t.Int.Encode(raw)
}

// EncodeName resolves name to its raw code and encodes it, failing if name
// is not a declared variant.
func (t EnumTemplate) EncodeName(name string) ([]byte, *Error) {
	for raw, n := range t.Variants {
		if n == name {
			return t.Int.Encode(raw), nil
		}
	}
	return nil, NewError(ErrorUnknownEnumValue, "unrecognized enum name %q", name)
}
