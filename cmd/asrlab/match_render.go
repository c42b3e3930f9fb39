package main

import (
	"fmt"
	"strings"

	"asrlab/internal/segmatch"
	"asrlab/internal/subtitle"
)

// matchJSON is the wire form of a classification outcome: segments flattened
// to their time ranges and text so the JSON stays readable.
type matchJSON struct {
	Kind          string        `json:"kind"`
	Sources       []segmentJSON `json:"sources"`
	Targets       []segmentJSON `json:"targets,omitempty"`
	Similarity    float64       `json:"similarity,omitempty"`
	MidpointDelta float64       `json:"midpoint_delta,omitempty"`
}

type segmentJSON struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func matchesJSON(matches []segmatch.Match) []matchJSON {
	out := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchJSON{
			Kind:          string(m.Kind),
			Sources:       segmentsJSON(m.Sources),
			Targets:       segmentsJSON(m.Targets),
			Similarity:    m.Similarity,
			MidpointDelta: m.MidpointDelta,
		})
	}
	return out
}

func segmentsJSON(segments []subtitle.Segment) []segmentJSON {
	out := make([]segmentJSON, 0, len(segments))
	for _, seg := range segments {
		out = append(out, segmentJSON{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return out
}

// matchTimeRange renders the reference side's span, falling back to the
// hypothesis side when the match carries no reference segments.
func matchTimeRange(m segmatch.Match) string {
	segments := m.Sources
	if len(segments) == 0 {
		segments = m.Targets
	}
	if len(segments) == 0 {
		return ""
	}
	if len(segments) == 1 {
		return segments[0].TimeRange()
	}
	first := segments[0]
	last := segments[len(segments)-1]
	return fmt.Sprintf("%s → %s", subtitle.FormatTimestamp(first.Start), subtitle.FormatTimestamp(last.End))
}

func matchText(segments []subtitle.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}
