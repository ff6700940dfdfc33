package characteristics

import (
	"fmt"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// Appearance is the decoded record for Appearance (0x2A01): a GAP category
// (top 10 bits) and sub-category (bottom 6 bits) pair, resolved against the
// assigned-numbers appearance sub-registry.
type Appearance struct {
	Raw         int64
	Category    int64
	Subcategory int64
	CategoryName    string
	SubcategoryName string
}

// appearanceCategories maps a GAP appearance category value to its name and
// its sub-category table. This mirrors the assigned-numbers "Appearance
// Values" sub-registry; it carries the categories this repository's
// characteristics (Heart Rate, Cycling, generic peripherals) actually need,
// not the full SIG table.
var appearanceCategories = map[int64]struct {
	Name          string
	Subcategories map[int64]string
}{
	0x00: {Name: "Unknown", Subcategories: map[int64]string{0: "Generic Unknown"}},
	0x01: {Name: "Phone", Subcategories: map[int64]string{0: "Generic Phone"}},
	0x02: {Name: "Computer", Subcategories: map[int64]string{0: "Generic Computer"}},
	0x03: {Name: "Watch", Subcategories: map[int64]string{
		0: "Generic Watch",
		1: "Sports Watch",
	}},
	0x0C: {Name: "Cycling", Subcategories: map[int64]string{
		0: "Generic Cycling",
		1: "Cycling Computer",
		2: "Speed Sensor",
		3: "Cadence Sensor",
		4: "Power Sensor",
		5: "Speed and Cadence Sensor",
	}},
	0x0D: {Name: "Heart Rate Sensor", Subcategories: map[int64]string{
		0: "Generic Heart Rate Sensor",
		1: "Heart Rate Belt",
	}},
	0x0E: {Name: "Blood Pressure", Subcategories: map[int64]string{
		0: "Generic Blood Pressure",
		1: "Arm Blood Pressure",
		2: "Wrist Blood Pressure",
	}},
	0x0F: {Name: "Human Interface Device", Subcategories: map[int64]string{0: "Generic HID"}},
	0x10: {Name: "Glucose Meter", Subcategories: map[int64]string{0: "Generic Glucose Meter"}},
	0x12: {Name: "Weight Scale", Subcategories: map[int64]string{0: "Generic Weight Scale"}},
	0x51: {Name: "Outdoor Sports Activity", Subcategories: map[int64]string{0: "Generic Outdoor Sports Activity"}},
}

func resolveAppearance(raw int64) Appearance {
	category := raw >> 6
	subcategory := raw & 0x3F

	rec := Appearance{Raw: raw, Category: category, Subcategory: subcategory}
	entry, ok := appearanceCategories[category]
	if !ok {
		rec.CategoryName = fmt.Sprintf("Unrecognized (%d)", category)
		rec.SubcategoryName = fmt.Sprintf("Unrecognized (%d)", subcategory)
		return rec
	}
	rec.CategoryName = entry.Name
	if name, ok := entry.Subcategories[subcategory]; ok {
		rec.SubcategoryName = name
	} else {
		rec.SubcategoryName = fmt.Sprintf("Unrecognized (%d)", subcategory)
	}
	return rec
}

type appearanceCodec struct {
	codec.BaseCodec
}

func newAppearanceCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return appearanceCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c appearanceCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if err := codec.ValidateLength(raw, c.Spec()); err != nil {
		return codec.Failure(raw, err)
	}
	v, err := codec.IntTemplate{Width: 2}.Decode(raw)
	if err != nil {
		return codec.Failure(raw, err)
	}
	return codec.Success(resolveAppearance(v), "", raw)
}

func (c appearanceCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(Appearance)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected Appearance")
	}
	return codec.IntTemplate{Width: 2}.Encode(rec.Raw), nil
}
