package assignednum

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/srgg/sigdb/uuid"
)

//go:embed data/uuids/*.yaml data/gss/*.yaml
var vendored embed.FS

// Loader reads the vendored Bluetooth SIG YAML tree into typed, immutable
// records. Each category loads at most once, the first time it is asked
// for, guarded by its own sync.Once; a missing file yields an empty map
// plus a logged warning, a malformed individual entry is skipped (and
// logged), and neither ever fails the whole load.
type Loader struct {
	log *logrus.Logger

	servicesOnce sync.Once
	services     map[string]*ServiceSpec

	characteristicsOnce sync.Once
	characteristics     map[string]*CharacteristicSpec

	descriptorsOnce sync.Once
	descriptors     map[string]*DescriptorSpec

	unitsOnce sync.Once
	units     map[string]*UnitSpec

	declarationsOnce sync.Once
	declarations     map[string]*DeclarationSpec

	membersOnce sync.Once
	members     map[string]*MemberSpec

	objectTypesOnce sync.Once
	objectTypes     map[string]*ObjectTypeSpec

	meshProfilesOnce sync.Once
	meshProfiles     map[string]*MeshProfileSpec

	serviceClassOnce sync.Once
	serviceClass     map[string]*ServiceClassSpec
}

// New returns a Loader that reads from the embedded vendored data tree. A
// nil logger defaults to logrus' standard logger.
func New(log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{log: log}
}

// rawUUIDEntry mirrors the `{uuid, name, id}` shape shared by every plain
// uuids/*.yaml category file.
type rawUUIDEntry struct {
	UUID string `yaml:"uuid"`
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

type rawUUIDFile struct {
	UUIDs []rawUUIDEntry `yaml:"uuids"`
}

type rawServiceEntry struct {
	rawUUIDEntry           `yaml:",inline"`
	MandatoryCharacteristics []string `yaml:"mandatory_characteristics"`
	OptionalCharacteristics  []string `yaml:"optional_characteristics"`
}

type rawServiceFile struct {
	Services []rawServiceEntry `yaml:"uuids"`
}

type rawFieldEntry struct {
	Field      string         `yaml:"field"`
	Type       string         `yaml:"type"`
	Size       int            `yaml:"size"`
	Unit       string         `yaml:"unit"`
	Resolution float64        `yaml:"resolution"`
	Offset     float64        `yaml:"offset"`
	Optional   bool           `yaml:"optional"`
	Enum       map[int]string `yaml:"enum"`
	Bits       map[int]string `yaml:"bits"`
	Sentinel   *int64         `yaml:"sentinel"`
}

type rawAutomationFile struct {
	UUID                    string          `yaml:"uuid"`
	Name                    string          `yaml:"name"`
	Identifier              string          `yaml:"identifier"`
	ValueType               string          `yaml:"value_type"`
	Fields                  []rawFieldEntry `yaml:"fields"`
	RequiredDescriptors     []string        `yaml:"required_descriptors"`
	RequiredCharacteristics []string        `yaml:"required_characteristics"`
	OptionalCharacteristics []string        `yaml:"optional_characteristics"`
	AllowsOverride          bool            `yaml:"allows_override"`
	ExpectedLength          int             `yaml:"expected_length"`
	MinLength               int             `yaml:"min_length"`
	MaxLength               int             `yaml:"max_length"`
	AllowVariableLength     bool            `yaml:"allow_variable_length"`
	MinValue                *float64        `yaml:"min_value"`
	MaxValue                *float64        `yaml:"max_value"`
}

// normalizeHex parses a SIG-style uuid string ("0x2A19", "2A19", or a full
// 128-bit UUID) and returns the normalized registry key.
func normalizeHex(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return u.Short(), nil
}

func (l *Loader) readFile(name string) ([]byte, bool) {
	data, err := vendored.ReadFile(name)
	if err != nil {
		l.log.WithFields(logrus.Fields{"file": name, "error": err}).Warn("assignednum: data file not found, category will be empty")
		return nil, false
	}
	return data, true
}

// loadUUIDCategory is the shared parse path for every plain uuids/*.yaml
// file: {uuid, name, id} triples keyed by normalized short-form UUID.
func (l *Loader) loadUUIDCategory(file string) map[string]rawUUIDEntry {
	out := make(map[string]rawUUIDEntry)
	data, ok := l.readFile(file)
	if !ok {
		return out
	}

	var parsed rawUUIDFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		l.log.WithFields(logrus.Fields{"file": file, "error": err}).Warn("assignednum: failed to parse category file, category will be empty")
		return out
	}

	for _, e := range parsed.UUIDs {
		key, err := normalizeHex(e.UUID)
		if err != nil {
			l.log.WithFields(logrus.Fields{"file": file, "uuid": e.UUID, "error": err}).Warn("assignednum: skipping entry with invalid uuid")
			continue
		}
		out[key] = e
	}
	return out
}

// Services returns the service UUID registry, loading it on first call.
func (l *Loader) Services() map[string]*ServiceSpec {
	l.servicesOnce.Do(func() {
		l.services = make(map[string]*ServiceSpec)
		data, ok := l.readFile("data/uuids/service_uuids.yaml")
		if !ok {
			return
		}
		var parsed rawServiceFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			l.log.WithFields(logrus.Fields{"error": err}).Warn("assignednum: failed to parse service_uuids.yaml")
			return
		}
		for _, e := range parsed.Services {
			key, err := normalizeHex(e.UUID)
			if err != nil {
				l.log.WithFields(logrus.Fields{"uuid": e.UUID, "error": err}).Warn("assignednum: skipping service with invalid uuid")
				continue
			}
			l.services[key] = &ServiceSpec{
				UUID:                     key,
				Name:                     e.Name,
				ID:                       e.ID,
				MandatoryCharacteristics: e.MandatoryCharacteristics,
				OptionalCharacteristics:  e.OptionalCharacteristics,
			}
		}
	})
	return l.services
}

// Characteristics returns the characteristic UUID + automation-schema
// registry, loading it on first call. Automation files under data/gss/ are
// merged in by reverse-DNS id; a characteristic listed in
// characteristic_uuids.yaml with no matching automation file still gets an
// entry (empty Fields, ValueType=unknown).
func (l *Loader) Characteristics() map[string]*CharacteristicSpec {
	l.characteristicsOnce.Do(func() {
		l.characteristics = make(map[string]*CharacteristicSpec)
		base := l.loadUUIDCategory("data/uuids/characteristic_uuids.yaml")
		for key, e := range base {
			l.characteristics[key] = &CharacteristicSpec{
				UUID:      key,
				Name:      e.Name,
				ID:        e.ID,
				ValueType: ValueUnknown,
			}
		}

		entries, err := vendored.ReadDir("data/gss")
		if err != nil {
			l.log.WithFields(logrus.Fields{"error": err}).Warn("assignednum: automation directory not found, characteristics will have no field schema")
			return
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
				continue
			}
			spec, key, err := l.parseAutomation("data/gss/" + entry.Name())
			if err != nil {
				l.log.WithFields(logrus.Fields{"file": entry.Name(), "error": err}).Warn("assignednum: skipping unparsable automation file")
				continue
			}
			l.characteristics[key] = spec
		}
	})
	return l.characteristics
}

func (l *Loader) parseAutomation(file string) (*CharacteristicSpec, string, error) {
	data, err := vendored.ReadFile(file)
	if err != nil {
		return nil, "", err
	}
	var raw rawAutomationFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, "", err
	}
	key, err := normalizeHex(raw.UUID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid uuid %q: %w", raw.UUID, err)
	}

	fields := make([]FieldSpec, 0, len(raw.Fields))
	for _, f := range raw.Fields {
		fields = append(fields, FieldSpec{
			Name:       f.Field,
			DataType:   DataType(f.Type),
			SizeBytes:  f.Size,
			UnitID:     f.Unit,
			Resolution: f.Resolution,
			Offset:     f.Offset,
			Optional:   f.Optional,
			Enum:       f.Enum,
			Bits:       f.Bits,
			Sentinel:   f.Sentinel,
		})
	}

	vt := ValueType(raw.ValueType)
	if vt == "" {
		vt = ValueUnknown
	}

	return &CharacteristicSpec{
		UUID:                    key,
		Name:                    raw.Name,
		ID:                      raw.Identifier,
		Fields:                  fields,
		ValueType:               vt,
		RequiredDescriptors:     raw.RequiredDescriptors,
		RequiredCharacteristics: raw.RequiredCharacteristics,
		OptionalCharacteristics: raw.OptionalCharacteristics,
		AllowsOverride:          raw.AllowsOverride,
		ExpectedLength:          raw.ExpectedLength,
		MinLength:               raw.MinLength,
		MaxLength:               raw.MaxLength,
		AllowVariableLen:        raw.AllowVariableLength,
		MinValue:                raw.MinValue,
		MaxValue:                raw.MaxValue,
	}, key, nil
}

// Descriptors returns the descriptor UUID registry, loading it on first call.
func (l *Loader) Descriptors() map[string]*DescriptorSpec {
	l.descriptorsOnce.Do(func() {
		l.descriptors = make(map[string]*DescriptorSpec)
		for key, e := range l.loadUUIDCategory("data/uuids/descriptors.yaml") {
			l.descriptors[key] = &DescriptorSpec{UUID: key, Name: e.Name, ID: e.ID}
		}
	})
	return l.descriptors
}

// Units returns the units registry, loading it on first call.
func (l *Loader) Units() map[string]*UnitSpec {
	l.unitsOnce.Do(func() {
		l.units = make(map[string]*UnitSpec)
		for key, e := range l.loadUUIDCategory("data/uuids/units.yaml") {
			l.units[key] = &UnitSpec{UUID: key, Name: e.Name, ID: e.ID, Symbol: unitSymbol(e.ID)}
		}
	})
	return l.units
}

// Declarations returns the GATT declarations registry, loading it on first call.
func (l *Loader) Declarations() map[string]*DeclarationSpec {
	l.declarationsOnce.Do(func() {
		l.declarations = make(map[string]*DeclarationSpec)
		for key, e := range l.loadUUIDCategory("data/uuids/declarations.yaml") {
			l.declarations[key] = &DeclarationSpec{UUID: key, Name: e.Name, ID: e.ID}
		}
	})
	return l.declarations
}

// Members returns the SIG member-UUID registry, loading it on first call.
func (l *Loader) Members() map[string]*MemberSpec {
	l.membersOnce.Do(func() {
		l.members = make(map[string]*MemberSpec)
		for key, e := range l.loadUUIDCategory("data/uuids/members.yaml") {
			l.members[key] = &MemberSpec{UUID: key, Name: e.Name, ID: e.ID}
		}
	})
	return l.members
}

// ObjectTypes returns the object-types registry, loading it on first call.
func (l *Loader) ObjectTypes() map[string]*ObjectTypeSpec {
	l.objectTypesOnce.Do(func() {
		l.objectTypes = make(map[string]*ObjectTypeSpec)
		for key, e := range l.loadUUIDCategory("data/uuids/object_types.yaml") {
			l.objectTypes[key] = &ObjectTypeSpec{UUID: key, Name: e.Name, ID: e.ID}
		}
	})
	return l.objectTypes
}

// MeshProfiles returns the mesh-profile registry, loading it on first call.
func (l *Loader) MeshProfiles() map[string]*MeshProfileSpec {
	l.meshProfilesOnce.Do(func() {
		l.meshProfiles = make(map[string]*MeshProfileSpec)
		for key, e := range l.loadUUIDCategory("data/uuids/mesh_profile_uuids.yaml") {
			l.meshProfiles[key] = &MeshProfileSpec{UUID: key, Name: e.Name, ID: e.ID}
		}
	})
	return l.meshProfiles
}

// ServiceClasses returns the SDP/GAP service-class registry, loading it on first call.
func (l *Loader) ServiceClasses() map[string]*ServiceClassSpec {
	l.serviceClassOnce.Do(func() {
		l.serviceClass = make(map[string]*ServiceClassSpec)
		for key, e := range l.loadUUIDCategory("data/uuids/service_class.yaml") {
			l.serviceClass[key] = &ServiceClassSpec{UUID: key, Name: e.Name, ID: e.ID}
		}
	})
	return l.serviceClass
}

// unitSymbol derives a short display symbol from a unit's reverse-DNS id
// for the handful of units the codec templates surface on CharacteristicData.
// Falls back to the bare id suffix when no symbol mapping is known.
func unitSymbol(id string) string {
	switch id {
	case "org.bluetooth.unit.percentage":
		return "%"
	case "org.bluetooth.unit.thermodynamic_temperature.degree_celsius":
		return "°C"
	case "org.bluetooth.unit.pressure.pascal":
		return "Pa"
	case "org.bluetooth.unit.length.metre":
		return "m"
	case "org.bluetooth.unit.velocity.metres_per_second":
		return "m/s"
	case "org.bluetooth.unit.electric_potential_difference.volt":
		return "V"
	case "org.bluetooth.unit.electric_current.ampere":
		return "A"
	case "org.bluetooth.unit.energy.joule":
		return "J"
	case "org.bluetooth.unit.time.second":
		return "s"
	case "org.bluetooth.unit.period.beats_per_minute":
		return "bpm"
	case "org.bluetooth.unit.concentration.parts_per_million":
		return "ppm"
	case "":
		return ""
	default:
		idx := strings.LastIndex(id, ".")
		if idx < 0 {
			return id
		}
		return id[idx+1:]
	}
}
