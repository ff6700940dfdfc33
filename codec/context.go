package codec

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Context is the read-only bundle of sibling state available to a decoder
// during a single decode invocation. It is constructed fresh per decode
// (by the Translator or the dependency Resolver) and is never shared
// across goroutines.
type Context struct {
	peerValues  *orderedmap.OrderedMap[string, *CharacteristicData] // sibling characteristic UUID -> its most recent decode
	descriptors *orderedmap.OrderedMap[string, any]                 // descriptor UUID -> decoded descriptor value
	DeviceInfo  any                                                 // opaque byte-order/vendor-quirk hint
}

// NewContext returns an empty Context ready for decoders that need no
// peer/descriptor state; PeerValue/Descriptor simply report "not found".
func NewContext() *Context {
	return &Context{
		peerValues:  orderedmap.New[string, *CharacteristicData](),
		descriptors: orderedmap.New[string, any](),
	}
}

// SetPeerValue records uuid's most recently decoded value for later
// PeerValue lookups by this or a subsequent decode sharing the context.
func (c *Context) SetPeerValue(uuid string, data *CharacteristicData) {
	c.peerValues.Set(uuid, data)
}

// PeerValue looks up a sibling characteristic's most recent decode by
// UUID. O(1) amortized.
func (c *Context) PeerValue(uuid string) (*CharacteristicData, bool) {
	return c.peerValues.Get(uuid)
}

// SetDescriptor records a decoded descriptor value by descriptor UUID.
func (c *Context) SetDescriptor(uuid string, value any) {
	c.descriptors.Set(uuid, value)
}

// Descriptor looks up a decoded descriptor value by descriptor UUID.
// O(1) amortized.
func (c *Context) Descriptor(uuid string) (any, bool) {
	return c.descriptors.Get(uuid)
}
