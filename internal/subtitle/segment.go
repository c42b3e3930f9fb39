package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one timed block of transcript text. Start and End are seconds
// from the beginning of the source; End is never less than Start for segments
// produced by this package.
type Segment struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Midpoint returns the segment's temporal center in seconds.
func (s Segment) Midpoint() float64 {
	return (s.Start + s.End) / 2
}

// TimeRange formats the segment bounds as "HH:MM:SS.mmm --> HH:MM:SS.mmm".
func (s Segment) TimeRange() string {
	return FormatTimestamp(s.Start) + " --> " + FormatTimestamp(s.End)
}

// ParseTimestamp converts an SRT/VTT timestamp ("00:00:19,200" or
// "00:00:19.200") to seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// SRT uses a comma before the milliseconds, VTT a period.
	value = strings.ReplaceAll(value, ",", ".")
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(parts[0])
	minutes, errM := strconv.Atoi(parts[1])
	seconds, errS := strconv.ParseFloat(parts[2], 64)
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

// FormatTimestamp renders seconds as "HH:MM:SS.mmm".
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := seconds - float64(h*3600+m*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", h, m, s)
}
