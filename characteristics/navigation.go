package characteristics

import (
	"math"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// Navigation is the decoded record for Navigation (0x2A68).
type Navigation struct {
	Bearing          float64 // degrees
	Heading          float64 // degrees
	RemainingDistance *float64 // metres
	RemainingVerticalDistance *float64 // metres
	Timestamp        any
	PositionStatus   int64
	HeadingSourceIsUnknown bool
	NavigationIndicatorType int64 // 0=To waypoint, 1=To destination
	WaypointReached bool
	DestinationReached bool
}

const (
	navigationFlagRemainingDistancePresent = 1 << 0
	navigationFlagRemainingVerticalDistancePresent = 1 << 1
	navigationFlagUTCTimePresent = 1 << 2
	navigationFlagPositionStatusShift = 3
	navigationFlagPositionStatusMask = 0x3
	navigationFlagHeadingSourceUnknown = 1 << 5
	navigationFlagNavigationIndicatorType = 1 << 6
	navigationFlagWaypointReached = 1 << 7
	navigationFlagDestinationReached = 1 << 8
)

type navigationCodec struct {
	codec.BaseCodec
}

func newNavigationCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return navigationCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c navigationCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 6 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "navigation requires at least 6 bytes, got %d", len(raw)))
	}

	flagsRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[0:2])
	if err != nil {
		return codec.Failure(raw, err)
	}
	flags := uint32(flagsRaw)

	bearingRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[2:4])
	if err != nil {
		return codec.Failure(raw, err)
	}
	headingRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[4:6])
	if err != nil {
		return codec.Failure(raw, err)
	}

	rec := Navigation{
		Bearing:                 float64(bearingRaw) / 100.0,
		Heading:                 float64(headingRaw) / 100.0,
		PositionStatus:          int64((flags >> navigationFlagPositionStatusShift) & navigationFlagPositionStatusMask),
		HeadingSourceIsUnknown:  flags&navigationFlagHeadingSourceUnknown != 0,
		WaypointReached:         flags&navigationFlagWaypointReached != 0,
		DestinationReached:      flags&navigationFlagDestinationReached != 0,
	}
	if flags&navigationFlagNavigationIndicatorType != 0 {
		rec.NavigationIndicatorType = 1
	}
	offset := 6

	if flags&navigationFlagRemainingDistancePresent != 0 {
		if len(raw) < offset+3 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "remaining distance flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 3}.Decode(raw[offset : offset+3])
		if err != nil {
			return codec.Failure(raw, err)
		}
		d := float64(v) / 10.0
		rec.RemainingDistance = &d
		offset += 3
	}
	if flags&navigationFlagRemainingVerticalDistancePresent != 0 {
		if len(raw) < offset+3 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "remaining vertical distance flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 3, Signed: true}.Decode(raw[offset : offset+3])
		if err != nil {
			return codec.Failure(raw, err)
		}
		d := float64(v) / 100.0
		rec.RemainingVerticalDistance = &d
		offset += 3
	}
	if flags&navigationFlagUTCTimePresent != 0 {
		if len(raw) < offset+7 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "utc time flag set but bytes exhausted"))
		}
		ts, tErr := codec.TimeTemplate{}.Decode(raw[offset : offset+7])
		if tErr != nil {
			return codec.Failure(raw, tErr)
		}
		rec.Timestamp = ts
		offset += 7
	}

	return codec.Success(rec, "deg", raw)
}

func (c navigationCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(Navigation)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected Navigation")
	}

	var flags uint32
	if rec.RemainingDistance != nil {
		flags |= navigationFlagRemainingDistancePresent
	}
	if rec.RemainingVerticalDistance != nil {
		flags |= navigationFlagRemainingVerticalDistancePresent
	}
	if rec.Timestamp != nil {
		flags |= navigationFlagUTCTimePresent
	}
	flags |= uint32(rec.PositionStatus&navigationFlagPositionStatusMask) << navigationFlagPositionStatusShift
	if rec.HeadingSourceIsUnknown {
		flags |= navigationFlagHeadingSourceUnknown
	}
	if rec.NavigationIndicatorType == 1 {
		flags |= navigationFlagNavigationIndicatorType
	}
	if rec.WaypointReached {
		flags |= navigationFlagWaypointReached
	}
	if rec.DestinationReached {
		flags |= navigationFlagDestinationReached
	}

	out := codec.IntTemplate{Width: 2}.Encode(int64(flags))
	out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.Bearing*100.0+0.5))...)
	out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(rec.Heading*100.0+0.5))...)

	if rec.RemainingDistance != nil {
		out = append(out, codec.IntTemplate{Width: 3}.Encode(int64(*rec.RemainingDistance*10.0+0.5))...)
	}
	if rec.RemainingVerticalDistance != nil {
		out = append(out, codec.IntTemplate{Width: 3, Signed: true}.Encode(int64(math.RoundToEven(*rec.RemainingVerticalDistance*100.0)))...)
	}
	if rec.Timestamp != nil {
		t, ok := asTime(rec.Timestamp)
		if !ok {
			return nil, codec.NewError(codec.ErrorTypeMismatch, "expected time.Time timestamp")
		}
		out = append(out, codec.TimeTemplate{}.Encode(t)...)
	}

	return out, nil
}
