package characteristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgg/sigdb/internal/assignednum"
	"github.com/srgg/sigdb/internal/registry"
)

func TestBuildLookupWiresBespokeAndSimpleCodecs(t *testing.T) {
	idx := registry.New(assignednum.New(nil))
	lookup := BuildLookup(idx, nil)

	hr, ok := lookup("2a37")
	require.True(t, ok, "heart rate measurement should resolve")
	assert.Equal(t, "2a37", hr.Spec().UUID)

	battery, ok := lookup("2a19")
	require.True(t, ok, "battery level should resolve via the generic simple codec")
	assert.Equal(t, "2a19", battery.Spec().UUID)

	_, ok = lookup("ffffffff")
	assert.False(t, ok)
}

func TestBuildLookupCoversEveryBespokeIdentifier(t *testing.T) {
	idx := registry.New(assignednum.New(nil))
	chars := idx.ListCharacteristics()

	byID := make(map[string]*assignednum.CharacteristicSpec, len(chars))
	for _, c := range chars {
		byID[c.ID] = c
	}

	for id := range bespokeBuilders {
		spec, ok := byID[id]
		assert.True(t, ok, "bespoke builder %q has no matching vendored characteristic", id)
		if ok {
			assert.NotEmpty(t, spec.UUID)
		}
	}
}
