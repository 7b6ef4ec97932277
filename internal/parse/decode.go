package parse

import (
	"strings"
	"time"
)

// timestampLayout is day/month/two-digit year followed by a 12-hour clock.
// Single-digit day, month and hour are accepted; minutes need two digits.
const timestampLayout = "2/1/06, 3:04 pm"

// DecodeTimestamp combines the date and time tokens of a header into a
// wall-clock time. The boolean is false when the tokens do not form a valid
// calendar date and 12-hour time.
func DecodeTimestamp(dateToken, timeToken string) (time.Time, bool) {
	// time.Parse accepts hour 0 for a 12-hour clock; exported transcripts
	// only use 1..12.
	hour, _, ok := strings.Cut(timeToken, ":")
	if !ok || strings.TrimLeft(hour, "0") == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(timestampLayout, dateToken+", "+timeToken)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
