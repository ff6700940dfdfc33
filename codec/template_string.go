package codec

import (
	"unicode/utf16"
	"unicode/utf8"
)

// maxStringBytes is the Bluetooth attribute value length ceiling (ATT_MTU
// bound in practice, but the GATT spec caps any single value at 512 bytes).
const maxStringBytes = 512

// StringEncoding selects the wire encoding for StringTemplate.
type StringEncoding int

const (
	EncodingUTF8 StringEncoding = iota
	EncodingUTF16LE
)

// StringTemplate decodes/encodes variable-length text fields (e.g. Model
// Number String, Manufacturer Name String). Length is taken from the full
// attribute value; there is no embedded length prefix.
type StringTemplate struct {
	Encoding StringEncoding
}

// Decode validates data is well-formed under the declared encoding and
// returns the decoded string.
func (t StringTemplate) Decode(data []byte) (string, *Error) {
	if len(data) > maxStringBytes {
		return "", NewError(ErrorLengthViolation, "string value exceeds %d bytes, got %d", maxStringBytes, len(data))
	}

	switch t.Encoding {
	case EncodingUTF16LE:
		if len(data)%2 != 0 {
			return "", NewError(ErrorTypeMismatch, "UTF-16LE string must have an even byte length, got %d", len(data))
		}
		units := make([]uint16, len(data)/2)
		for i := range units {
			units[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
		}
		return string(utf16.Decode(units)), nil
	default:
		if !utf8.Valid(data) {
			return "", NewError(ErrorTypeMismatch, "value is not valid UTF-8")
		}
		return string(data), nil
	}
}

// Encode converts s to wire bytes, rejecting results that exceed the
// maximum attribute value length.
func (t StringTemplate) Encode(s string) ([]byte, *Error) {
	var out []byte
	switch t.Encoding {
	case EncodingUTF16LE:
		units := utf16.Encode([]rune(s))
		out = make([]byte, 0, len(units)*2)
		for _, u := range units {
			out = append(out, byte(u), byte(u>>8))
		}
	default:
		out = []byte(s)
	}

	if len(out) > maxStringBytes {
		return nil, NewError(ErrorLengthViolation, "encoded string exceeds %d bytes, got %d", maxStringBytes, len(out))
	}
	return out, nil
}
