// Package codec implements the characteristic decode/encode pipeline: the
// reusable numeric/scaled/IEEE-11073/enum/variable-length templates, the
// declarative validation pipeline, the per-decode context, and the
// translator facade that ties the registry and codec engine together.
package codec

import "fmt"

// ErrorKind enumerates the taxonomy of failures a decode/encode/registry
// operation can surface. ErrorNotPresent names the not-present outcome, but
// no decode attaches it to Err: a sentinel-value decode reports ok=true and
// carries a NotPresent value in CharacteristicData.Value.
type ErrorKind string

const (
	ErrorInvalidUUID        ErrorKind = "invalid_uuid"
	ErrorUUIDNotFound       ErrorKind = "uuid_not_found"
	ErrorLengthViolation    ErrorKind = "length_violation"
	ErrorRangeViolation     ErrorKind = "range_violation"
	ErrorTypeMismatch       ErrorKind = "type_mismatch"
	ErrorFlagsReserved      ErrorKind = "flags_reserved"
	ErrorUnknownEnumValue   ErrorKind = "unknown_enum_value"
	ErrorNotPresent         ErrorKind = "not_present"
	ErrorContextMismatch    ErrorKind = "context_mismatch"
	ErrorMissingDependency  ErrorKind = "missing_dependency"
	ErrorDependencyCycle    ErrorKind = "dependency_cycle"
	ErrorUUIDConflict       ErrorKind = "uuid_conflict"
	ErrorInternalDecoder    ErrorKind = "internal_decoder_error"
)

// Error is the value-typed error carried on a failed CharacteristicData,
// or returned directly from registry/registration calls. It never crosses
// a component boundary as a panic or exception.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is allows errors.Is to compare *Error values by Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError builds an *Error with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotPresent is a sentinel value: the decoded raw data matched a
// documented "not present"/"unknown" code (e.g. 0xFFFF, IEEE-11073 NRes).
// It is a normal, successful outcome, never an error condition: it is
// returned as the decoded Value, with Err left nil.
type NotPresent struct {
	Reason string
}

// CharacteristicData is the result of a single decode.
type CharacteristicData struct {
	Value    any    // typed parsed value, or a NotPresent, on success
	Unit     string // display unit, may be empty
	RawData  []byte // the original bytes, always present
	OK       bool
	Err      *Error   // absent (nil) iff OK is true
	Warnings []*Error // non-fatal findings on an otherwise-OK decode, e.g. ErrorFlagsReserved
}

// Success builds a successful CharacteristicData.
func Success(value any, unit string, raw []byte) *CharacteristicData {
	return &CharacteristicData{Value: value, Unit: unit, RawData: raw, OK: true}
}

// Failure builds a failed CharacteristicData; raw is preserved regardless
// of outcome per the component contract.
func Failure(raw []byte, err *Error) *CharacteristicData {
	return &CharacteristicData{RawData: raw, OK: false, Err: err}
}
