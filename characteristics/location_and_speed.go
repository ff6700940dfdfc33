package characteristics

import (
	"math"

	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
)

// LocationAndSpeed is the decoded record for Location and Speed (0x2A67).
type LocationAndSpeed struct {
	InstantaneousSpeed *float64 // m/s
	TotalDistance      *float64 // metres
	Latitude           *float64 // degrees
	Longitude          *float64 // degrees
	Elevation          *float64 // metres
	Heading            *float64 // degrees
	RollingTime        *uint8   // seconds
	Timestamp          any
	PositionStatus     *int64 // 0=No fix, 1=Position OK, 2=Estimated, 3=Last known
	SpeedAndDistanceFormatIs2D bool
	ElevationSourceIsUnknown   bool
	HeadingSourceIsUnknown     bool
}

const (
	locationFlagInstantaneousSpeedPresent = 1 << 0
	locationFlagTotalDistancePresent      = 1 << 1
	locationFlagLocationPresent           = 1 << 2
	locationFlagElevationPresent          = 1 << 3
	locationFlagHeadingPresent            = 1 << 4
	locationFlagRollingTimePresent        = 1 << 5
	locationFlagUTCTimePresent            = 1 << 6
	locationFlagPositionStatusShift        = 7
	locationFlagPositionStatusMask         = 0x3
	locationFlagSpeedDistanceFormat2D       = 1 << 9
	locationFlagElevationSourceUnknown      = 1 << 10
	locationFlagHeadingSourceUnknown         = 1 << 11
)

type locationAndSpeedCodec struct {
	codec.BaseCodec
}

func newLocationAndSpeedCodec(spec *assignednum.CharacteristicSpec) codec.CharacteristicCodec {
	return locationAndSpeedCodec{BaseCodec: codec.NewBaseCodec(spec, spec.RequiredCharacteristics, spec.OptionalCharacteristics)}
}

func (c locationAndSpeedCodec) Decode(raw []byte, ctx *codec.Context) *codec.CharacteristicData {
	if len(raw) < 2 {
		return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "location and speed requires at least 2 bytes, got %d", len(raw)))
	}

	flagsRaw, err := codec.IntTemplate{Width: 2}.Decode(raw[0:2])
	if err != nil {
		return codec.Failure(raw, err)
	}
	flags := uint32(flagsRaw)
	rec := LocationAndSpeed{
		SpeedAndDistanceFormatIs2D: flags&locationFlagSpeedDistanceFormat2D != 0,
		ElevationSourceIsUnknown:   flags&locationFlagElevationSourceUnknown != 0,
		HeadingSourceIsUnknown:     flags&locationFlagHeadingSourceUnknown != 0,
	}
	status := int64((flags >> locationFlagPositionStatusShift) & locationFlagPositionStatusMask)
	rec.PositionStatus = &status
	offset := 2

	if flags&locationFlagInstantaneousSpeedPresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "instantaneous speed flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		speed := float64(v) / 100.0
		rec.InstantaneousSpeed = &speed
		offset += 2
	}
	if flags&locationFlagTotalDistancePresent != 0 {
		if len(raw) < offset+3 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "total distance flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 3}.Decode(raw[offset : offset+3])
		if err != nil {
			return codec.Failure(raw, err)
		}
		distance := float64(v) / 10.0
		rec.TotalDistance = &distance
		offset += 3
	}
	if flags&locationFlagLocationPresent != 0 {
		if len(raw) < offset+8 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "location flag set but bytes exhausted"))
		}
		latRaw, err := codec.IntTemplate{Width: 4, Signed: true}.Decode(raw[offset : offset+4])
		if err != nil {
			return codec.Failure(raw, err)
		}
		lonRaw, err := codec.IntTemplate{Width: 4, Signed: true}.Decode(raw[offset+4 : offset+8])
		if err != nil {
			return codec.Failure(raw, err)
		}
		lat := float64(latRaw) * 1e-7
		lon := float64(lonRaw) * 1e-7
		rec.Latitude = &lat
		rec.Longitude = &lon
		offset += 8
	}
	if flags&locationFlagElevationPresent != 0 {
		if len(raw) < offset+3 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "elevation flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 3, Signed: true}.Decode(raw[offset : offset+3])
		if err != nil {
			return codec.Failure(raw, err)
		}
		elevation := float64(v) / 100.0
		rec.Elevation = &elevation
		offset += 3
	}
	if flags&locationFlagHeadingPresent != 0 {
		if len(raw) < offset+2 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "heading flag set but bytes exhausted"))
		}
		v, err := codec.IntTemplate{Width: 2}.Decode(raw[offset : offset+2])
		if err != nil {
			return codec.Failure(raw, err)
		}
		heading := float64(v) / 100.0
		rec.Heading = &heading
		offset += 2
	}
	if flags&locationFlagRollingTimePresent != 0 {
		if len(raw) < offset+1 {
			return codec.Failure(raw, codec.NewError(codec.ErrorLengthViolation, "rolling time flag set but bytes exhausted"))
		}
		t := raw[offset]
		rec.RollingTime = &t
		offset++
	}
	if flags&locationFlagUTCTimePresent != 0 {
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

	return codec.Success(rec, "m", raw)
}

func (c locationAndSpeedCodec) Encode(value any, ctx *codec.Context) ([]byte, *codec.Error) {
	rec, ok := value.(LocationAndSpeed)
	if !ok {
		return nil, codec.NewError(codec.ErrorTypeMismatch, "expected LocationAndSpeed")
	}

	var flags uint32
	if rec.InstantaneousSpeed != nil {
		flags |= locationFlagInstantaneousSpeedPresent
	}
	if rec.TotalDistance != nil {
		flags |= locationFlagTotalDistancePresent
	}
	if rec.Latitude != nil && rec.Longitude != nil {
		flags |= locationFlagLocationPresent
	}
	if rec.Elevation != nil {
		flags |= locationFlagElevationPresent
	}
	if rec.Heading != nil {
		flags |= locationFlagHeadingPresent
	}
	if rec.RollingTime != nil {
		flags |= locationFlagRollingTimePresent
	}
	if rec.Timestamp != nil {
		flags |= locationFlagUTCTimePresent
	}
	if rec.PositionStatus != nil {
		flags |= uint32(*rec.PositionStatus&locationFlagPositionStatusMask) << locationFlagPositionStatusShift
	}
	if rec.SpeedAndDistanceFormatIs2D {
		flags |= locationFlagSpeedDistanceFormat2D
	}
	if rec.ElevationSourceIsUnknown {
		flags |= locationFlagElevationSourceUnknown
	}
	if rec.HeadingSourceIsUnknown {
		flags |= locationFlagHeadingSourceUnknown
	}

	out := codec.IntTemplate{Width: 2}.Encode(int64(flags))
	if rec.InstantaneousSpeed != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.InstantaneousSpeed*100.0+0.5))...)
	}
	if rec.TotalDistance != nil {
		out = append(out, codec.IntTemplate{Width: 3}.Encode(int64(*rec.TotalDistance*10.0+0.5))...)
	}
	if rec.Latitude != nil && rec.Longitude != nil {
		out = append(out, codec.IntTemplate{Width: 4, Signed: true}.Encode(int64(math.RoundToEven(*rec.Latitude/1e-7)))...)
		out = append(out, codec.IntTemplate{Width: 4, Signed: true}.Encode(int64(math.RoundToEven(*rec.Longitude/1e-7)))...)
	}
	if rec.Elevation != nil {
		out = append(out, codec.IntTemplate{Width: 3, Signed: true}.Encode(int64(math.RoundToEven(*rec.Elevation*100.0)))...)
	}
	if rec.Heading != nil {
		out = append(out, codec.IntTemplate{Width: 2}.Encode(int64(*rec.Heading*100.0+0.5))...)
	}
	if rec.RollingTime != nil {
		out = append(out, *rec.RollingTime)
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
