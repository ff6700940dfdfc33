package codec

import "time"

// TimeTemplate decodes/encodes the Bluetooth SIG 7-byte Date Time structure:
// Year (uint16 LE, 0 = unknown), Month, Day, Hours, Minutes, Seconds
// (uint8 each, 0 = unknown field where applicable per the containing
// characteristic's definition).
type TimeTemplate struct{}

const timeTemplateWidth = 7

// Decode parses the 7-byte structure into a time.Time in UTC. A zero Year
// is preserved (time.Time{Year: 0, ...}); callers treat that as "date
// unknown" per the containing characteristic's semantics.
func (TimeTemplate) Decode(data []byte) (time.Time, *Error) {
	if len(data) != timeTemplateWidth {
		return time.Time{}, NewError(ErrorLengthViolation, "date-time template expects %d bytes, got %d", timeTemplateWidth, len(data))
	}

	year := int(data[0]) | int(data[1])<<8
	month := time.Month(data[2])
	day := int(data[3])
	hour := int(data[4])
	minute := int(data[5])
	second := int(data[6])

	if month < 0 || month > 12 {
		return time.Time{}, NewError(ErrorRangeViolation, "date-time month %d out of range", month)
	}
	if day > 31 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, NewError(ErrorRangeViolation, "date-time field out of range")
	}

	return time.Date(year, month, day, hour, minute, second, 0, time.UTC), nil
}

// Encode writes t's Year/Month/Day/Hour/Minute/Second fields, discarding
// monotonic/location data; t must already be normalized to UTC by the
// caller if that matters to the characteristic.
func (TimeTemplate) Encode(t time.Time) []byte {
	year := t.Year()
	return []byte{
		byte(year),
		byte(year >> 8),
		byte(t.Month()),
		byte(t.Day()),
		byte(t.Hour()),
		byte(t.Minute()),
		byte(t.Second()),
	}
}
