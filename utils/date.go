package utils

import "time"

// PlantTZ is the factory's local timezone. Shift classification and
// active-slot checks always run in plant time, whatever the server runs in.
var PlantTZ = time.FixedZone("IST", 5*3600+1800)

const DateLayout = "2006-01-02"

func Ptr[T any](v T) *T {
	return &v
}

// MustParseDate parses a yyyy-MM-dd string, returning the zero time on
// malformed input.
func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation(DateLayout, dateStr, PlantTZ)
	return t
}

// ParseDate parses a yyyy-MM-dd string in plant time.
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, dateStr, PlantTZ)
}
