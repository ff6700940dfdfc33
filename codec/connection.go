package codec

import "context"

// Connection is the minimal collaborator the dependency Resolver and the
// Translator's process_services operation need from a transport: reading a
// characteristic's current value and subscribing to notifications. It
// deliberately says nothing about discovery, pairing, or link management —
// those stay with whatever transport the caller already has.
type Connection interface {
	// ReadCharacteristic fetches the current raw value for a characteristic
	// UUID, scoped to the given service UUID.
	ReadCharacteristic(ctx context.Context, serviceUUID, characteristicUUID string) ([]byte, error)

	// ReadDescriptor fetches a descriptor's raw value.
	ReadDescriptor(ctx context.Context, serviceUUID, characteristicUUID, descriptorUUID string) ([]byte, error)

	// Subscribe registers fn to be called with each notified/indicated
	// value for a characteristic, returning an unsubscribe func.
	Subscribe(ctx context.Context, serviceUUID, characteristicUUID string, fn func([]byte)) (unsubscribe func(), err error)
}
