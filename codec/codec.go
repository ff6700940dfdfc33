package codec

import "github.com/srgg/sigdb/internal/assignednum"

// CharacteristicCodec is implemented by every characteristic decoder,
// whether built from the generic templates (simple.go in the
// characteristics package) or hand-written for a bespoke flag-driven
// layout (heart rate, glucose, cycling power, and so on).
//
// A codec never mutates its Context; it only reads sibling values and
// descriptors placed there by the Translator or the dependency Resolver
// before Decode is called.
type CharacteristicCodec interface {
	// Decode parses raw into a CharacteristicData. It never panics: a
	// malformed input is reported via CharacteristicData.Err.
	Decode(raw []byte, ctx *Context) *CharacteristicData

	// Encode is the inverse of Decode, producing the wire bytes for value.
	Encode(value any, ctx *Context) ([]byte, *Error)

	// Spec returns the assigned-numbers spec this codec was built from.
	Spec() *assignednum.CharacteristicSpec

	// RequiredDependencies lists sibling characteristic UUIDs (or names)
	// that must be present in the Context for Decode to succeed (e.g.
	// Glucose Measurement Context requires Glucose Measurement's sequence
	// number to cross-check against).
	RequiredDependencies() []string

	// OptionalDependencies lists sibling characteristic UUIDs that, when
	// present in the Context, refine the decode (e.g. a descriptor-level
	// unit override) but whose absence is not an error.
	OptionalDependencies() []string
}

// BaseCodec implements the Spec/RequiredDependencies/OptionalDependencies
// boilerplate shared by every codec; embedders supply Decode/Encode.
type BaseCodec struct {
	spec     *assignednum.CharacteristicSpec
	required []string
	optional []string
}

// NewBaseCodec builds a BaseCodec for spec, with the given dependency
// lists (either may be nil).
func NewBaseCodec(spec *assignednum.CharacteristicSpec, required, optional []string) BaseCodec {
	return BaseCodec{spec: spec, required: required, optional: optional}
}

func (b BaseCodec) Spec() *assignednum.CharacteristicSpec { return b.spec }
func (b BaseCodec) RequiredDependencies() []string        { return b.required }
func (b BaseCodec) OptionalDependencies() []string         { return b.optional }
