package codec

import (
	stdcontext "context"
)

// CodecLookup resolves a sibling characteristic UUID to the codec that
// decodes it. The characteristics package registers its table-driven and
// bespoke codecs behind this, so the Resolver never imports that package
// directly (it would be a cycle: characteristics depends on codec).
type CodecLookup func(characteristicUUID string) (CharacteristicCodec, bool)

// Resolver fetches and decodes a characteristic's required and optional
// sibling dependencies over a Connection, assembling a Context a Decode
// call can consult. Dependency graphs among Bluetooth SIG characteristics
// are shallow in practice, but the Resolver still guards against a cycle
// with a visited set rather than assuming one can't occur. visited tracks
// the current ancestry path only (a node is unmarked once its subtree
// finishes), so a diamond — two branches sharing a common dependency — is
// fetched twice rather than flagged as a false cycle.
type Resolver struct {
	lookup CodecLookup
}

// NewResolver builds a Resolver that looks up sibling codecs via lookup.
func NewResolver(lookup CodecLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve builds a Context for codec by fetching and decoding every
// characteristic named in its RequiredDependencies/OptionalDependencies,
// recursively resolving each dependency's own dependencies. A required
// dependency that cannot be read or decoded fails the whole resolution; an
// optional one is skipped on failure. A cycle among dependency UUIDs is
// reported as ErrorDependencyCycle rather than recursing forever.
func (r *Resolver) Resolve(stdctx stdcontext.Context, conn Connection, serviceUUID string, codec CharacteristicCodec) (*Context, *Error) {
	ctx := NewContext()
	visited := map[string]bool{codec.Spec().UUID: true}

	if err := r.resolveInto(stdctx, conn, serviceUUID, codec, ctx, visited); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (r *Resolver) resolveInto(stdctx stdcontext.Context, conn Connection, serviceUUID string, codec CharacteristicCodec, ctx *Context, visited map[string]bool) *Error {
	for _, uuid := range codec.RequiredDependencies() {
		if err := r.fetchOne(stdctx, conn, serviceUUID, uuid, ctx, visited); err != nil {
			return err
		}
	}
	for _, uuid := range codec.OptionalDependencies() {
		_ = r.fetchOne(stdctx, conn, serviceUUID, uuid, ctx, visited)
	}
	return nil
}

func (r *Resolver) fetchOne(stdctx stdcontext.Context, conn Connection, serviceUUID, uuid string, ctx *Context, visited map[string]bool) *Error {
	if visited[uuid] {
		return NewError(ErrorDependencyCycle, "dependency cycle detected at %s", uuid)
	}
	visited[uuid] = true
	defer delete(visited, uuid)

	depCodec, ok := r.lookup(uuid)
	if !ok {
		return NewError(ErrorMissingDependency, "no codec registered for dependency %s", uuid)
	}

	raw, err := conn.ReadCharacteristic(stdctx, serviceUUID, uuid)
	if err != nil {
		return NewError(ErrorMissingDependency, "reading dependency %s: %v", uuid, err)
	}

	if err := r.resolveInto(stdctx, conn, serviceUUID, depCodec, ctx, visited); err != nil {
		return err
	}

	data := depCodec.Decode(raw, ctx)
	ctx.SetPeerValue(uuid, data)
	if !data.OK {
		return NewError(ErrorMissingDependency, "dependency %s failed to decode: %v", uuid, data.Err)
	}
	return nil
}
