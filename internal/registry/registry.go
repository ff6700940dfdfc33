// Package registry implements the process-wide, read-after-load index over
// the Bluetooth SIG assigned-numbers data: UUID/name resolution for
// characteristics, services, descriptors, units, members, object types,
// mesh profiles, declarations and service classes, plus the custom
// override map consulted before SIG data.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cornelk/hashmap"

	"github.com/srgg/sigdb/internal/assignednum"
)

// UUIDConflictError is returned by RegisterCustom when a UUID already has a
// SIG entry and the custom spec does not declare AllowsOverride.
type UUIDConflictError struct {
	UUID string
}

func (e *UUIDConflictError) Error() string {
	return fmt.Sprintf("uuid %q already has a Bluetooth SIG entry; registration requires allows_override", e.UUID)
}

// Index is the read-mostly registry over the assigned-numbers tree.
//
// SIG data is published once per category (guarded by the Loader's own
// sync.Once) into a lock-free hashmap.Map; reads of that data never take a
// lock. Custom registrations live in a side map behind a sync.RWMutex that
// readers of the custom map acquire for read, and RegisterCustom/
// UnregisterCustom acquire for write — SIG-only reads never touch this
// lock at all.
type Index struct {
	loader *assignednum.Loader

	servicesOnce sync.Once
	services     *hashmap.Map[string, *assignednum.ServiceSpec]

	characteristicsOnce sync.Once
	characteristics     *hashmap.Map[string, *assignednum.CharacteristicSpec]

	descriptorsOnce sync.Once
	descriptors     *hashmap.Map[string, *assignednum.DescriptorSpec]

	unitsOnce sync.Once
	units     *hashmap.Map[string, *assignednum.UnitSpec]

	membersOnce sync.Once
	members     *hashmap.Map[string, *assignednum.MemberSpec]

	objectTypesOnce sync.Once
	objectTypes     *hashmap.Map[string, *assignednum.ObjectTypeSpec]

	meshProfilesOnce sync.Once
	meshProfiles     *hashmap.Map[string, *assignednum.MeshProfileSpec]

	declarationsOnce sync.Once
	declarations     *hashmap.Map[string, *assignednum.DeclarationSpec]

	serviceClassOnce sync.Once
	serviceClass     *hashmap.Map[string, *assignednum.ServiceClassSpec]

	customMu      sync.RWMutex
	custom        map[string]*assignednum.CharacteristicSpec
	customClasses map[string]any
}

// New constructs an Index backed by the given Loader.
func New(loader *assignednum.Loader) *Index {
	return &Index{
		loader:        loader,
		custom:        make(map[string]*assignednum.CharacteristicSpec),
		customClasses: make(map[string]any),
	}
}

func (idx *Index) characteristicMap() *hashmap.Map[string, *assignednum.CharacteristicSpec] {
	idx.characteristicsOnce.Do(func() {
		idx.characteristics = hashmap.New[string, *assignednum.CharacteristicSpec]()
		for key, spec := range idx.loader.Characteristics() {
			idx.characteristics.GetOrInsert(key, spec)
		}
	})
	return idx.characteristics
}

// ResolveCharacteristic looks up a characteristic by normalized UUID key.
// Custom registrations are checked first, SIG data second.
func (idx *Index) ResolveCharacteristic(key string) (*assignednum.CharacteristicSpec, bool) {
	idx.customMu.RLock()
	if spec, ok := idx.custom[key]; ok {
		idx.customMu.RUnlock()
		return spec, true
	}
	idx.customMu.RUnlock()

	return idx.characteristicMap().Get(key)
}

// ResolveCharacteristicByName looks up a characteristic by its canonical
// SIG name, case-insensitively. Custom registrations are checked first.
func (idx *Index) ResolveCharacteristicByName(name string) (*assignednum.CharacteristicSpec, bool) {
	target := strings.ToLower(name)

	idx.customMu.RLock()
	for _, spec := range idx.custom {
		if strings.ToLower(spec.Name) == target {
			idx.customMu.RUnlock()
			return spec, true
		}
	}
	idx.customMu.RUnlock()

	var found *assignednum.CharacteristicSpec
	idx.characteristicMap().Range(func(_ string, spec *assignednum.CharacteristicSpec) bool {
		if strings.ToLower(spec.Name) == target {
			found = spec
			return false
		}
		return true
	})
	return found, found != nil
}

// ListCharacteristics returns every known characteristic spec (custom
// registrations take precedence over a SIG entry for the same UUID), in no
// particular order.
func (idx *Index) ListCharacteristics() []*assignednum.CharacteristicSpec {
	seen := make(map[string]bool)
	out := make([]*assignednum.CharacteristicSpec, 0)

	idx.customMu.RLock()
	for key, spec := range idx.custom {
		out = append(out, spec)
		seen[key] = true
	}
	idx.customMu.RUnlock()

	idx.characteristicMap().Range(func(key string, spec *assignednum.CharacteristicSpec) bool {
		if !seen[key] {
			out = append(out, spec)
		}
		return true
	})
	return out
}

// RegisterCustom installs a custom characteristic spec and its decode/encode
// class for uuid, replacing any existing custom registration for the same
// UUID unconditionally. If uuid already has a SIG entry, registration is
// rejected with UUIDConflictError unless spec.AllowsOverride is set.
//
// class is stored as `any` rather than a concrete codec type: the registry
// package has no business knowing the codec package's types (codec already
// imports registry to resolve specs, so the reverse import would cycle).
// Callers that need the class back type-assert it themselves; see
// ResolveCustomClass.
func (idx *Index) RegisterCustom(key string, spec *assignednum.CharacteristicSpec, class any) error {
	if _, hasSIG := idx.characteristicMap().Get(key); hasSIG && !spec.AllowsOverride {
		return &UUIDConflictError{UUID: key}
	}

	idx.customMu.Lock()
	defer idx.customMu.Unlock()
	idx.custom[key] = spec
	idx.customClasses[key] = class
	return nil
}

// ResolveCustomClass returns the class registered alongside a custom spec
// for uuid, if any. A codec lookup should consult this before falling back
// to whatever static table it was built from, so a registration made after
// that table was assembled is usable immediately.
func (idx *Index) ResolveCustomClass(key string) (any, bool) {
	idx.customMu.RLock()
	defer idx.customMu.RUnlock()
	class, ok := idx.customClasses[key]
	return class, ok
}

// UnregisterCustom removes a custom registration for uuid. After removal,
// ResolveCharacteristic transparently falls back to the SIG entry for the
// same UUID if one exists.
func (idx *Index) UnregisterCustom(key string) {
	idx.customMu.Lock()
	defer idx.customMu.Unlock()
	delete(idx.custom, key)
	delete(idx.customClasses, key)
}

func (idx *Index) serviceMap() *hashmap.Map[string, *assignednum.ServiceSpec] {
	idx.servicesOnce.Do(func() {
		idx.services = hashmap.New[string, *assignednum.ServiceSpec]()
		for k, spec := range idx.loader.Services() {
			idx.services.GetOrInsert(k, spec)
		}
	})
	return idx.services
}

// ResolveService looks up a service by normalized UUID key.
func (idx *Index) ResolveService(key string) (*assignednum.ServiceSpec, bool) {
	return idx.serviceMap().Get(key)
}

// ResolveServiceByName looks up a service by its canonical SIG name,
// case-insensitively.
func (idx *Index) ResolveServiceByName(name string) (*assignednum.ServiceSpec, bool) {
	target := strings.ToLower(name)
	var found *assignednum.ServiceSpec
	idx.serviceMap().Range(func(_ string, spec *assignednum.ServiceSpec) bool {
		if strings.ToLower(spec.Name) == target {
			found = spec
			return false
		}
		return true
	})
	return found, found != nil
}

// ResolveDescriptor looks up a descriptor by normalized UUID key.
func (idx *Index) ResolveDescriptor(key string) (*assignednum.DescriptorSpec, bool) {
	idx.descriptorsOnce.Do(func() {
		idx.descriptors = hashmap.New[string, *assignednum.DescriptorSpec]()
		for k, spec := range idx.loader.Descriptors() {
			idx.descriptors.GetOrInsert(k, spec)
		}
	})
	return idx.descriptors.Get(key)
}

// ResolveUnit looks up a unit by normalized UUID key.
func (idx *Index) ResolveUnit(key string) (*assignednum.UnitSpec, bool) {
	idx.unitsOnce.Do(func() {
		idx.units = hashmap.New[string, *assignednum.UnitSpec]()
		for k, spec := range idx.loader.Units() {
			idx.units.GetOrInsert(k, spec)
		}
	})
	return idx.units.Get(key)
}

// ResolveMember looks up a SIG member UUID by normalized key.
func (idx *Index) ResolveMember(key string) (*assignednum.MemberSpec, bool) {
	idx.membersOnce.Do(func() {
		idx.members = hashmap.New[string, *assignednum.MemberSpec]()
		for k, spec := range idx.loader.Members() {
			idx.members.GetOrInsert(k, spec)
		}
	})
	return idx.members.Get(key)
}

// ResolveObjectType looks up an OTS object type by normalized key.
func (idx *Index) ResolveObjectType(key string) (*assignednum.ObjectTypeSpec, bool) {
	idx.objectTypesOnce.Do(func() {
		idx.objectTypes = hashmap.New[string, *assignednum.ObjectTypeSpec]()
		for k, spec := range idx.loader.ObjectTypes() {
			idx.objectTypes.GetOrInsert(k, spec)
		}
	})
	return idx.objectTypes.Get(key)
}

// ResolveMeshProfile looks up a mesh profile UUID by normalized key.
func (idx *Index) ResolveMeshProfile(key string) (*assignednum.MeshProfileSpec, bool) {
	idx.meshProfilesOnce.Do(func() {
		idx.meshProfiles = hashmap.New[string, *assignednum.MeshProfileSpec]()
		for k, spec := range idx.loader.MeshProfiles() {
			idx.meshProfiles.GetOrInsert(k, spec)
		}
	})
	return idx.meshProfiles.Get(key)
}

// ResolveDeclaration looks up a GATT declaration UUID by normalized key.
func (idx *Index) ResolveDeclaration(key string) (*assignednum.DeclarationSpec, bool) {
	idx.declarationsOnce.Do(func() {
		idx.declarations = hashmap.New[string, *assignednum.DeclarationSpec]()
		for k, spec := range idx.loader.Declarations() {
			idx.declarations.GetOrInsert(k, spec)
		}
	})
	return idx.declarations.Get(key)
}

// ResolveServiceClass looks up an SDP/GAP service-class UUID by normalized key.
func (idx *Index) ResolveServiceClass(key string) (*assignednum.ServiceClassSpec, bool) {
	idx.serviceClassOnce.Do(func() {
		idx.serviceClass = hashmap.New[string, *assignednum.ServiceClassSpec]()
		for k, spec := range idx.loader.ServiceClasses() {
			idx.serviceClass.GetOrInsert(k, spec)
		}
	})
	return idx.serviceClass.Get(key)
}
