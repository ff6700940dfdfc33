package codec

import (
	stdcontext "context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/srgg/sigdb/internal/assignednum"
	"github.com/srgg/sigdb/internal/registry"
)

// Translator is the façade the rest of the module (and callers outside it)
// use to go from a UUID/name to a decoded or encoded characteristic value.
// It owns nothing that a single Decode/Encode call needs exclusively: the
// registry is read-mostly and safe for concurrent resolve/parse/encode
// calls, and each parse builds its own Context unless the caller supplies
// one explicitly (ParseWithContext).
type Translator struct {
	registry *registry.Index
	lookup   CodecLookup
	resolver *Resolver
	log      *logrus.Logger
}

var (
	instance     *Translator
	instanceOnce sync.Once
)

// New builds a constructable Translator for tests or callers that want an
// isolated registry rather than the process-wide singleton.
func New(idx *registry.Index, lookup CodecLookup, log *logrus.Logger) *Translator {
	if log == nil {
		log = logrus.New()
	}
	return &Translator{
		registry: idx,
		lookup:   lookup,
		resolver: NewResolver(lookup),
		log:      log,
	}
}

// Configure installs idx/lookup as the process-wide singleton's backing
// state. It must be called once, before the first GetInstance, typically
// from the CLI bootstrap in cmd/sigdb; calling it again is a
// no-op, matching the once-only nature of the singleton itself.
func Configure(idx *registry.Index, lookup CodecLookup, log *logrus.Logger) {
	instanceOnce.Do(func() {
		instance = New(idx, lookup, log)
	})
}

// GetInstance returns the process-wide Translator singleton. It panics if
// Configure was never called: there is no implicit default registry to
// fall back to.
func GetInstance() *Translator {
	if instance == nil {
		panic("codec: GetInstance called before Configure")
	}
	return instance
}

// lookupCodec resolves uuid to its codec, consulting the registry's custom
// class first so a RegisterCustom call made after the static lookup table
// was built (characteristics.BuildLookup's closure over a snapshot of the
// registry's inventory) is usable immediately, then falling back to that
// static table.
func (t *Translator) lookupCodec(uuid string) (CharacteristicCodec, bool) {
	if class, ok := t.registry.ResolveCustomClass(uuid); ok {
		if c, ok := class.(CharacteristicCodec); ok {
			return c, true
		}
	}
	return t.lookup(uuid)
}

// Supports reports whether uuid has a registered codec, without decoding
// anything.
func (t *Translator) Supports(uuid string) bool {
	_, ok := t.lookupCodec(uuid)
	return ok
}

// Resolve looks up a characteristic's assigned-numbers spec by UUID.
func (t *Translator) Resolve(uuid string) (*assignednum.CharacteristicSpec, bool) {
	return t.registry.ResolveCharacteristic(uuid)
}

// ResolveByName looks up a characteristic's assigned-numbers spec by its
// canonical SIG name.
func (t *Translator) ResolveByName(name string) (*assignednum.CharacteristicSpec, bool) {
	return t.registry.ResolveCharacteristicByName(name)
}

// Parse decodes raw bytes for characteristicUUID using a fresh, empty
// Context. Characteristics whose codec declares dependencies that are not
// present in an empty Context will fail to decode with
// ErrorMissingDependency; use ParseWithContext or ParseBatch when
// cross-characteristic state is needed.
func (t *Translator) Parse(characteristicUUID string, raw []byte) *CharacteristicData {
	return t.ParseWithContext(characteristicUUID, raw, NewContext())
}

// ParseWithContext decodes raw bytes using the given Context, letting the
// caller supply sibling values and descriptors gathered out of band (e.g.
// from a prior ParseBatch call, or a dependency Resolver run).
func (t *Translator) ParseWithContext(characteristicUUID string, raw []byte, ctx *Context) *CharacteristicData {
	codec, ok := t.lookupCodec(characteristicUUID)
	if !ok {
		return Failure(raw, NewError(ErrorUUIDNotFound, "no codec registered for %s", characteristicUUID))
	}
	return codec.Decode(raw, ctx)
}

// ParseByClass decodes raw bytes using the codec registered for a
// characteristic's canonical SIG name rather than its UUID (e.g.
// "Heart Rate Measurement").
func (t *Translator) ParseByClass(name string, raw []byte) *CharacteristicData {
	spec, ok := t.registry.ResolveCharacteristicByName(name)
	if !ok {
		return Failure(raw, NewError(ErrorUUIDNotFound, "no characteristic named %q", name))
	}
	return t.Parse(spec.UUID, raw)
}

// BatchItem is one (characteristicUUID, raw) pair for ParseBatch.
type BatchItem struct {
	CharacteristicUUID string
	Raw                []byte
}

// ParseBatch decodes every item in order, sharing a single Context so
// later items can see earlier ones' decoded values as peer state. It is
// explicitly non-atomic: a failure partway through still returns the
// results decoded so far, each with its own OK/Err, rather than aborting
// the batch.
func (t *Translator) ParseBatch(items []BatchItem) []*CharacteristicData {
	ctx := NewContext()
	out := make([]*CharacteristicData, 0, len(items))

	for _, item := range items {
		data := t.ParseWithContext(item.CharacteristicUUID, item.Raw, ctx)
		ctx.SetPeerValue(item.CharacteristicUUID, data)
		out = append(out, data)
	}
	return out
}

// Encode encodes value for characteristicUUID using a fresh Context.
func (t *Translator) Encode(characteristicUUID string, value any) ([]byte, *Error) {
	codec, ok := t.lookupCodec(characteristicUUID)
	if !ok {
		return nil, NewError(ErrorUUIDNotFound, "no codec registered for %s", characteristicUUID)
	}
	return codec.Encode(value, NewContext())
}

// RegisterCustom installs a custom characteristic spec and the codec class
// that decodes/encodes it, delegating to the underlying registry's conflict
// rules (UUIDConflictError unless the spec allows override or the SIG has
// no entry for that UUID). Once registered, class is used by Parse/Encode/
// ProcessServices immediately — lookupCodec consults the registry's custom
// class ahead of the static table built at startup.
func (t *Translator) RegisterCustom(uuid string, spec *assignednum.CharacteristicSpec, class CharacteristicCodec) error {
	return t.registry.RegisterCustom(uuid, spec, class)
}

// ProcessServices walks every characteristic the Connection exposes for
// serviceUUID, resolving each one's dependencies and decoding it, and
// returns the decoded results keyed by characteristic UUID. A
// characteristic with no registered codec is skipped, not an error: a
// service commonly exposes vendor-specific characteristics alongside SIG
// ones.
func (t *Translator) ProcessServices(stdctx stdcontext.Context, conn Connection, serviceUUID string, characteristicUUIDs []string) map[string]*CharacteristicData {
	out := make(map[string]*CharacteristicData, len(characteristicUUIDs))

	for _, uuid := range characteristicUUIDs {
		codec, ok := t.lookupCodec(uuid)
		if !ok {
			continue
		}

		raw, err := conn.ReadCharacteristic(stdctx, serviceUUID, uuid)
		if err != nil {
			out[uuid] = Failure(nil, NewError(ErrorMissingDependency, "reading %s: %v", uuid, err))
			continue
		}

		ctx, depErr := t.resolver.Resolve(stdctx, conn, serviceUUID, codec)
		if depErr != nil {
			t.log.WithField("characteristic", uuid).WithError(depErr).Warn("dependency resolution failed, decoding without peer context")
			ctx = NewContext()
		}

		out[uuid] = codec.Decode(raw, ctx)
	}
	return out
}
