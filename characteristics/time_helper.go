package characteristics

import "time"

// asTime narrows an any-typed decode result back to time.Time, the shape
// codec.TimeTemplate.Decode produces.
func asTime(value any) (time.Time, bool) {
	t, ok := value.(time.Time)
	return t, ok
}
