// Package assignednum loads the Bluetooth SIG assigned-numbers data tree
// (UUIDs for services, characteristics, descriptors, units, declarations,
// members, object types, mesh profiles, plus the per-characteristic field
// schema, "automation" in SIG parlance) into typed, immutable records.
//
// Loading is lazy and safe for concurrent use: each category is parsed
// exactly once, guarded by its own sync.Once, the first time it is
// accessed (see loader.go).
package assignednum

// DataType enumerates the primitive wire types a characteristic field may
// declare in its automation schema.
type DataType string

const (
	DataTypeUint8   DataType = "uint8"
	DataTypeUint16  DataType = "uint16"
	DataTypeUint24  DataType = "uint24"
	DataTypeUint32  DataType = "uint32"
	DataTypeSint8   DataType = "sint8"
	DataTypeSint16  DataType = "sint16"
	DataTypeSint24  DataType = "sint24"
	DataTypeSint32  DataType = "sint32"
	DataTypeSFloat  DataType = "sfloat"
	DataTypeFloat32 DataType = "float32"
	DataTypeUtf8s   DataType = "utf8s"
	DataTypeUtf16s  DataType = "utf16s"
	DataTypeBoolean DataType = "boolean"
)

// ValueType is the semantic category a decoded characteristic value falls
// into, independent of its wire representation.
type ValueType string

const (
	ValueNumeric     ValueType = "numeric"
	ValueStructured  ValueType = "structured"
	ValueString      ValueType = "string"
	ValueBitmap      ValueType = "bitmap"
	ValueEnumeration ValueType = "enumeration"
	ValueBytes       ValueType = "bytes"
	ValueUnknown     ValueType = "unknown"
)

// FieldSpec describes one field of a characteristic's automation schema, in
// declaration order.
type FieldSpec struct {
	Name       string
	DataType   DataType
	SizeBytes  int
	UnitID     string // e.g. "org.bluetooth.unit.percentage", empty if none
	Resolution float64
	Offset     float64
	Optional   bool
	Enum       map[int]string // raw value -> variant name, nil if not an enum field
	Bits       map[int]string // bit index -> capability name, nil if not a bitmap field
	Sentinel   *int64         // raw value meaning "not present", nil if none declared
}

// CharacteristicSpec is the immutable, SIG-published (or custom-registered)
// description of a single GATT characteristic.
type CharacteristicSpec struct {
	UUID                  string // normalized short/full hex, see uuid.UUID.Short()
	Name                  string
	ID                    string // reverse-DNS identifier, e.g. org.bluetooth.characteristic.battery_level
	Fields                []FieldSpec
	ValueType             ValueType
	RequiredDescriptors   []string
	RequiredCharacteristics []string // only meaningful when embedded in a ServiceSpec context
	OptionalCharacteristics []string
	AllowsOverride        bool

	ExpectedLength   int  // >0 if fixed length is declared
	MinLength        int  // >0 if a lower bound is declared
	MaxLength        int  // >0 if an upper bound is declared
	AllowVariableLen bool

	MinValue *float64
	MaxValue *float64
}

// ServiceSpec is the immutable description of a single GATT service.
type ServiceSpec struct {
	UUID                    string
	Name                    string
	ID                      string
	MandatoryCharacteristics []string
	OptionalCharacteristics  []string
}

// DescriptorSpec is the immutable description of a single GATT descriptor.
type DescriptorSpec struct {
	UUID string
	Name string
	ID   string
}

// UnitSpec is the immutable description of a single Bluetooth SIG unit.
type UnitSpec struct {
	UUID   string
	Name   string
	ID     string
	Symbol string
}

// MemberSpec is the immutable description of a single SIG member UUID
// (16-bit member/organization identifiers).
type MemberSpec struct {
	UUID string
	Name string
	ID   string
}

// ObjectTypeSpec is the immutable description of a single Object Transfer
// Service object type.
type ObjectTypeSpec struct {
	UUID string
	Name string
	ID   string
}

// MeshProfileSpec is the immutable description of a single Bluetooth Mesh
// profile/model UUID.
type MeshProfileSpec struct {
	UUID string
	Name string
	ID   string
}

// DeclarationSpec is the immutable description of a single GATT declaration
// (primary/secondary service, characteristic, include).
type DeclarationSpec struct {
	UUID string
	Name string
	ID   string
}

// ServiceClassSpec is the immutable description of a single SDP/GAP service
// class UUID.
type ServiceClassSpec struct {
	UUID string
	Name string
	ID   string
}
