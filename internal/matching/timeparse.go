package matching

import (
	"regexp"
	"strconv"
	"strings"
)

// TimeRange is a coarse bucket over the practice's wall-clock day.
type TimeRange string

const (
	TimeRangeMorning   TimeRange = "morning"
	TimeRangeAfternoon TimeRange = "afternoon"
	TimeRangeEvening   TimeRange = "evening"
)

// fallbackHour is used when a time label can't be parsed. The displayed label
// is the source of truth, so malformed text degrades instead of failing.
const fallbackHour = 12

var timeLabelRe = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?\s*([AaPp])\.?[Mm]?`)

// ParseTimeToHour extracts a [0,23] hour from a free-text time label like
// "9:00 AM" or "2:30pm". "12 AM" maps to 0 and "12 PM" to 12. Anything that
// doesn't match the expected shape returns noon.
func ParseTimeToHour(label string) int {
	m := timeLabelRe.FindStringSubmatch(label)
	if m == nil {
		return fallbackHour
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 1 || hour > 12 {
		return fallbackHour
	}
	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(m[3], "p") {
		hour += 12
	}
	return hour
}

// InTimeRange reports whether a time label falls in the given range. The
// ranges are fixed and non-overlapping: morning [9,12), afternoon [12,17),
// evening [17,24). Hours before 9 fall in no range; labels are assumed to be
// in the practice's local wall-clock convention, with no timezone handling.
func InTimeRange(label string, r TimeRange) bool {
	bucket, ok := bucketFor(ParseTimeToHour(label))
	return ok && bucket == r
}

func bucketFor(hour int) (TimeRange, bool) {
	switch {
	case hour >= 9 && hour < 12:
		return TimeRangeMorning, true
	case hour >= 12 && hour < 17:
		return TimeRangeAfternoon, true
	case hour >= 17 && hour < 24:
		return TimeRangeEvening, true
	default:
		return "", false
	}
}
