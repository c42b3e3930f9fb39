package segmatch

import (
	"testing"

	"asrlab/internal/subtitle"
)

func seg(start, end float64, text string) subtitle.Segment {
	return subtitle.Segment{Start: start, End: end, Text: text}
}

func classify(t *testing.T, ref, hyp []subtitle.Segment) *Result {
	t.Helper()
	result, err := Classify(ref, hyp, DefaultOptions())
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	return result
}

func TestClassifyOneToOne(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 2, "hello world")}
	hyp := []subtitle.Segment{seg(0.1, 2.1, "Hello, world!")}

	result := classify(t, ref, hyp)
	if len(result.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(result.Matches))
	}
	m := result.Matches[0]
	if m.Kind != KindOneToOne {
		t.Errorf("kind = %s, want %s", m.Kind, KindOneToOne)
	}
	if m.Similarity != 1 {
		t.Errorf("similarity = %v, want 1 after normalization", m.Similarity)
	}
}

func TestClassifyTextDiffOnly(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 2, "the quick brown fox jumps")}
	hyp := []subtitle.Segment{seg(0, 2, "the quick brown dog sleeps")}

	result := classify(t, ref, hyp)
	m := result.Matches[0]
	if m.Kind != KindTextDiffOnly {
		t.Errorf("kind = %s, want %s", m.Kind, KindTextDiffOnly)
	}
	if m.Similarity <= 0 || m.Similarity >= 0.95 {
		t.Errorf("similarity = %v, want inside (0, 0.95)", m.Similarity)
	}
}

func TestClassifySplit(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 2, "hello world")}
	hyp := []subtitle.Segment{seg(0, 1, "hello"), seg(1, 2, "world")}

	result := classify(t, ref, hyp)
	if len(result.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(result.Matches))
	}
	m := result.Matches[0]
	if m.Kind != KindSplit {
		t.Errorf("kind = %s, want %s", m.Kind, KindSplit)
	}
	if len(m.Targets) != 2 {
		t.Errorf("targets = %d, want 2", len(m.Targets))
	}
}

func TestClassifySplitDisguisedOneToOne(t *testing.T) {
	// One overlapping candidate carries the full text; the other is a sliver.
	ref := []subtitle.Segment{seg(0, 2, "hello world")}
	hyp := []subtitle.Segment{seg(0, 1.9, "hello world"), seg(1.5, 2, "uh")}

	result := classify(t, ref, hyp)
	m := result.Matches[0]
	if m.Kind != KindOneToOne {
		t.Errorf("kind = %s, want %s despite two overlaps", m.Kind, KindOneToOne)
	}
	if len(m.Targets) != 1 || m.Targets[0].Text != "hello world" {
		t.Errorf("targets = %+v, want the full-text candidate", m.Targets)
	}
}

func TestClassifyMerged(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 1, "a"), seg(1, 2, "b")}
	hyp := []subtitle.Segment{seg(0, 2, "a b")}

	result := classify(t, ref, hyp)

	merged := result.ByKind(KindMerged)
	if len(merged) != 1 {
		t.Fatalf("merged matches = %d, want 1", len(merged))
	}
	if len(merged[0].Sources) != 2 {
		t.Errorf("merged sources = %d, want 2", len(merged[0].Sources))
	}
	if len(merged[0].Targets) != 1 {
		t.Errorf("merged targets = %d, want 1", len(merged[0].Targets))
	}
	// The forward pass still classifies both reference segments on their own.
	if diffs := result.ByKind(KindTextDiffOnly); len(diffs) != 2 {
		t.Errorf("text diff matches = %d, want 2", len(diffs))
	}
}

func TestClassifyMissing(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 2, "completely unrelated sentence")}
	hyp := []subtitle.Segment{seg(10, 12, "different words entirely here")}

	result := classify(t, ref, hyp)
	m := result.Matches[0]
	if m.Kind != KindMissing {
		t.Errorf("kind = %s, want %s", m.Kind, KindMissing)
	}
	if len(m.Targets) != 0 {
		t.Errorf("missing match has targets: %+v", m.Targets)
	}
}

func TestClassifyTimelineMismatch(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 2, "hello wonderful world")}
	hyp := []subtitle.Segment{seg(30, 32, "hello wonderful world")}

	result := classify(t, ref, hyp)
	m := result.Matches[0]
	if m.Kind != KindTimelineMismatch {
		t.Fatalf("kind = %s, want %s", m.Kind, KindTimelineMismatch)
	}
	if m.MidpointDelta != 30 {
		t.Errorf("midpoint delta = %v, want 30", m.MidpointDelta)
	}
	if m.Similarity != 1 {
		t.Errorf("similarity = %v, want 1", m.Similarity)
	}
}

func TestClassifyEveryReferenceClassifiedOnce(t *testing.T) {
	ref := []subtitle.Segment{
		seg(0, 2, "first segment here"),
		seg(3, 5, "second segment text"),
		seg(6, 8, "third bit of speech"),
		seg(20, 22, "moved in time but same words"),
	}
	hyp := []subtitle.Segment{
		seg(0, 2, "first segment here"),
		seg(3, 4, "second"),
		seg(4, 5, "segment text"),
		seg(50, 52, "moved in time but same words"),
	}

	result := classify(t, ref, hyp)

	counted := 0
	for _, m := range result.Matches {
		if m.Kind == KindMerged {
			// Merged groups restate segments the forward pass already
			// classified.
			continue
		}
		counted += len(m.Sources)
	}
	if counted != len(ref) {
		t.Errorf("classified %d reference segments, want %d", counted, len(ref))
	}
}

func TestClassifyUnmatchedHypSegmentAbsent(t *testing.T) {
	// A hypothesis segment with no time overlap and no text similarity to
	// any reference simply appears in no category.
	ref := []subtitle.Segment{seg(0, 2, "reference words here")}
	hyp := []subtitle.Segment{
		seg(0, 2, "reference words here"),
		seg(40, 42, "utterly unrelated insertion"),
	}

	result := classify(t, ref, hyp)
	for _, m := range result.Matches {
		for _, target := range m.Targets {
			if target.Start == 40 {
				t.Errorf("stray hypothesis segment surfaced in %s match", m.Kind)
			}
		}
	}
}

func TestClassifyEmptyInputs(t *testing.T) {
	result := classify(t, nil, nil)
	if len(result.Matches) != 0 {
		t.Errorf("matches = %d, want 0", len(result.Matches))
	}

	result = classify(t, []subtitle.Segment{seg(0, 1, "alone here")}, nil)
	if len(result.Matches) != 1 || result.Matches[0].Kind != KindMissing {
		t.Errorf("ref-only result = %+v, want one missing match", result.Matches)
	}
}

func TestClassifyInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.OverlapThreshold = 0
	if _, err := Classify(nil, nil, opts); err == nil {
		t.Error("zero overlap threshold accepted")
	}

	opts = DefaultOptions()
	opts.NearIdentityThreshold = 1.5
	if _, err := Classify(nil, nil, opts); err == nil {
		t.Error("threshold above one accepted")
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name string
		a    subtitle.Segment
		b    subtitle.Segment
		want float64
	}{
		{"identical", seg(0, 2, ""), seg(0, 2, ""), 1},
		{"contained", seg(0, 4, ""), seg(1, 2, ""), 1},
		{"half of shorter", seg(0, 2, ""), seg(1, 3, ""), 0.5},
		{"disjoint", seg(0, 1, ""), seg(2, 3, ""), 0},
		{"touching", seg(0, 1, ""), seg(1, 2, ""), 0},
		{"zero duration", seg(1, 1, ""), seg(0, 2, ""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapRatio(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("OverlapRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}
