package vad

import (
	"encoding/json"
	"fmt"
	"os"
)

// sidecarSpan is one speech interval in a segments sidecar file.
type sidecarSpan struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// SegmentsFile is the JSON sidecar written next to filtered audio, recording
// the speech intervals the filter preserved.
type SegmentsFile struct {
	SampleRate  int           `json:"sample_rate"`
	NumSegments int           `json:"num_segments"`
	Segments    []sidecarSpan `json:"segments"`
}

// WriteSegmentsFile stores speech spans as a JSON sidecar.
func WriteSegmentsFile(path string, sampleRate int, spans []Span) error {
	payload := SegmentsFile{
		SampleRate:  sampleRate,
		NumSegments: len(spans),
		Segments:    make([]sidecarSpan, 0, len(spans)),
	}
	for _, span := range spans {
		payload.Segments = append(payload.Segments, sidecarSpan{
			Start:    span.Start,
			End:      span.End,
			Duration: span.Duration(),
		})
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	return nil
}

// ReadSegmentsFile loads a segments sidecar. Spans with an end before their
// start are dropped and reported in the skipped count rather than failing
// the load.
func ReadSegmentsFile(path string) (int, []Span, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read segments: %w", err)
	}
	var payload SegmentsFile
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, nil, 0, fmt.Errorf("parse segments %s: %w", path, err)
	}

	spans := make([]Span, 0, len(payload.Segments))
	skipped := 0
	for _, s := range payload.Segments {
		if s.End < s.Start {
			skipped++
			continue
		}
		spans = append(spans, Span{Start: s.Start, End: s.End})
	}
	return payload.SampleRate, spans, skipped, nil
}
