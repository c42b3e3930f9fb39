package vad

import "math"

// SpanPair pairs the i-th span of two segmentations for positional
// comparison. Either side may be nil when the lists differ in length.
type SpanPair struct {
	Index      int     `json:"index"`
	A          *Span   `json:"a,omitempty"`
	B          *Span   `json:"b,omitempty"`
	StartDelta float64 `json:"start_delta,omitempty"`
	EndDelta   float64 `json:"end_delta,omitempty"`
	Match      bool    `json:"match"`
}

// SpanComparison reports how two ordered span lists line up under a timing
// tolerance.
type SpanComparison struct {
	Pairs          []SpanPair `json:"pairs"`
	Common         int        `json:"common"`
	Matched        int        `json:"matched"`
	MeanStartDelta float64    `json:"mean_start_delta"`
	MeanEndDelta   float64    `json:"mean_end_delta"`
}

// CompareSpans pairs spans by position and checks each pair's start and end
// against the tolerance in seconds. Positional pairing (rather than overlap
// matching) is deliberate: the two lists come from the same pipeline run
// twice, so index drift already signals a boundary disagreement worth seeing.
func CompareSpans(a, b []Span, tolerance float64) SpanComparison {
	cmp := SpanComparison{}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}

	var totalStart, totalEnd float64
	for i := 0; i < longest; i++ {
		pair := SpanPair{Index: i}
		if i < len(a) {
			span := a[i]
			pair.A = &span
		}
		if i < len(b) {
			span := b[i]
			pair.B = &span
		}
		if pair.A != nil && pair.B != nil {
			pair.StartDelta = math.Abs(pair.A.Start - pair.B.Start)
			pair.EndDelta = math.Abs(pair.A.End - pair.B.End)
			pair.Match = pair.StartDelta <= tolerance && pair.EndDelta <= tolerance
			cmp.Common++
			totalStart += pair.StartDelta
			totalEnd += pair.EndDelta
			if pair.Match {
				cmp.Matched++
			}
		}
		cmp.Pairs = append(cmp.Pairs, pair)
	}

	if cmp.Common > 0 {
		cmp.MeanStartDelta = totalStart / float64(cmp.Common)
		cmp.MeanEndDelta = totalEnd / float64(cmp.Common)
	}
	return cmp
}
