package characteristics

import (
	"github.com/sirupsen/logrus"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
	"github.com/srgg/sigdb/internal/registry"
)

// bespokeBuilders maps a characteristic's reverse-DNS identifier to the
// constructor for its hand-written codec, for the characteristics whose
// field layout (flag-driven, bitmap-with-trailing-fields, control-point
// framing, cross-characteristic dependency) the generic simpleCodec
// builder in simple.go cannot express.
var bespokeBuilders = map[string]func(*assignednum.CharacteristicSpec) codec.CharacteristicCodec{
	"org.bluetooth.characteristic.heart_rate_measurement":        newHeartRateCodec,
	"org.bluetooth.characteristic.cycling_power_measurement":     newCyclingPowerMeasurementCodec,
	"org.bluetooth.characteristic.cycling_power_control_point":   newCyclingPowerControlPointCodec,
	"org.bluetooth.characteristic.glucose_measurement":           newGlucoseMeasurementCodec,
	"org.bluetooth.characteristic.glucose_measurement_context":   newGlucoseMeasurementContextCodec,
	"org.bluetooth.characteristic.blood_pressure_measurement":    newBloodPressureMeasurementCodec,
	"org.bluetooth.characteristic.weight_measurement":            newWeightMeasurementCodec,
	"org.bluetooth.characteristic.body_composition_measurement":  newBodyCompositionMeasurementCodec,
	"org.bluetooth.characteristic.csc_measurement":                newCSCMeasurementCodec,
	"org.bluetooth.characteristic.rsc_measurement":                newRSCMeasurementCodec,
	"org.bluetooth.characteristic.plx_spot_check_measurement":    newPLXSpotCheckMeasurementCodec,
	"org.bluetooth.characteristic.plx_continuous_measurement":    newPLXContinuousMeasurementCodec,
	"org.bluetooth.characteristic.location_and_speed":            newLocationAndSpeedCodec,
	"org.bluetooth.characteristic.navigation":                    newNavigationCodec,
	"org.bluetooth.characteristic.temperature_measurement":       newTemperatureMeasurementCodec,
	"org.bluetooth.characteristic.gap.appearance":                newAppearanceCodec,
	"org.bluetooth.characteristic.ln_control_point":               newLNControlPointCodec,
	"org.bluetooth.characteristic.time_update_control_point":     newTimeUpdateControlPointCodec,
}

// BuildLookup constructs the full characteristic-UUID -> CharacteristicCodec
// table from the registry's inventory: bespoke codecs for the identifiers
// named in bespokeBuilders, the generic simpleCodec builder for every other
// single-field numeric/scaled/enum/bitmap characteristic, skipping (with a
// logged warning) any characteristic whose schema neither path can serve.
//
// The returned CodecLookup is a snapshot closed over idx's inventory at
// call time; it does not see characteristics registered via
// Index.RegisterCustom afterward. codec.Translator.lookupCodec accounts for
// that by checking Index.ResolveCustomClass before falling back to this
// table, so callers going through the Translator façade still see custom
// registrations immediately.
func BuildLookup(idx *registry.Index, log *logrus.Logger) codec.CodecLookup {
	table := make(map[string]codec.CharacteristicCodec)

	for _, spec := range idx.ListCharacteristics() {
		if build, ok := bespokeBuilders[spec.ID]; ok {
			table[spec.UUID] = build(spec)
			continue
		}
		if c, ok := buildSimpleCodec(spec); ok {
			table[spec.UUID] = c
			continue
		}
		if log != nil {
			log.WithFields(logrus.Fields{"uuid": spec.UUID, "id": spec.ID}).
				Warn("characteristics: no codec builder available for characteristic, skipping")
		}
	}

	return func(uuid string) (codec.CharacteristicCodec, bool) {
		c, ok := table[uuid]
		return c, ok
	}
}
