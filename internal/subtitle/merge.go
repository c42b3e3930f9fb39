package subtitle

import "strings"

// Merge coalesces adjacent segments whose gap is at most window seconds.
// Text is joined with a space; the merged segment keeps the first segment's
// index and spans from the earliest start to the latest end. A window below
// zero returns the input unchanged.
func Merge(segments []Segment, window float64) []Segment {
	if len(segments) == 0 || window < 0 {
		return segments
	}

	merged := make([]Segment, 0, len(segments))
	current := segments[0]
	for _, seg := range segments[1:] {
		if seg.Start-current.End <= window {
			if seg.End > current.End {
				current.End = seg.End
			}
			if seg.Text != "" {
				current.Text = strings.TrimSpace(current.Text + " " + seg.Text)
			}
			continue
		}
		merged = append(merged, current)
		current = seg
	}
	merged = append(merged, current)
	return merged
}
