package vad

// Span is a speech interval in seconds.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Run is a maximal contiguous stretch of true values in a mask, expressed in
// sample offsets.
type Run struct {
	Offset int
	Length int
}

// Runs enumerates the maximal true runs in a mask in order of appearance.
func Runs(mask []bool) []Run {
	var runs []Run
	i := 0
	for i < len(mask) {
		for i < len(mask) && !mask[i] {
			i++
		}
		if i >= len(mask) {
			break
		}
		start := i
		for i < len(mask) && mask[i] {
			i++
		}
		runs = append(runs, Run{Offset: start, Length: i - start})
	}
	return runs
}

// SegmentsFromMask converts the true runs of a per-sample mask into speech
// spans in seconds.
func SegmentsFromMask(mask []bool, sampleRate int) []Span {
	if sampleRate <= 0 {
		return nil
	}
	runs := Runs(mask)
	spans := make([]Span, 0, len(runs))
	for _, run := range runs {
		spans = append(spans, Span{
			Start: float64(run.Offset) / float64(sampleRate),
			End:   float64(run.Offset+run.Length) / float64(sampleRate),
		})
	}
	return spans
}

// MaskFromSpans rasterizes speech spans onto a per-sample mask of length n.
// Spans outside [0, n) are clipped; inverted spans are ignored.
func MaskFromSpans(spans []Span, sampleRate, n int) []bool {
	mask := make([]bool, n)
	if sampleRate <= 0 {
		return mask
	}
	for _, span := range spans {
		start := int(span.Start * float64(sampleRate))
		end := int(span.End * float64(sampleRate))
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			mask[i] = true
		}
	}
	return mask
}
