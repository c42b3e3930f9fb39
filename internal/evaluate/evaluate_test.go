package evaluate

import (
	"math"
	"testing"

	"asrlab/internal/subtitle"
)

func seg(start, end float64, text string) subtitle.Segment {
	return subtitle.Segment{Start: start, End: end, Text: text}
}

func TestSummarizeIdenticalTranscripts(t *testing.T) {
	segments := []subtitle.Segment{
		seg(0, 2, "hello there"),
		seg(3, 5, "second line"),
	}

	summary := Summarize(segments, segments)
	if summary.Similarity != 1 {
		t.Errorf("similarity = %v, want 1", summary.Similarity)
	}
	if summary.WER != 0 {
		t.Errorf("WER = %v, want 0", summary.WER)
	}
	if summary.WordLossRate != 0 {
		t.Errorf("word loss rate = %v, want 0", summary.WordLossRate)
	}
	if summary.Ref.Segments != 2 || summary.Ref.Words != 4 {
		t.Errorf("ref stats = %+v", summary.Ref)
	}
	if summary.Ref.FirstStart != 0 || summary.Ref.LastEnd != 5 {
		t.Errorf("ref span = %v – %v", summary.Ref.FirstStart, summary.Ref.LastEnd)
	}
}

func TestSummarizeWordLoss(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 2, "one two three four")}
	hyp := []subtitle.Segment{seg(0, 2, "one two")}

	summary := Summarize(ref, hyp)
	if summary.WordLossRate != 50 {
		t.Errorf("word loss rate = %v, want 50", summary.WordLossRate)
	}
	if summary.WER != 50 {
		t.Errorf("WER = %v, want 50", summary.WER)
	}
}

func TestSummarizeEmptyInputs(t *testing.T) {
	summary := Summarize(nil, nil)
	if summary.Similarity != 1 {
		t.Errorf("similarity of two empty transcripts = %v, want 1", summary.Similarity)
	}
	if summary.WER != 0 {
		t.Errorf("WER = %v, want 0", summary.WER)
	}
	if summary.Ref.Segments != 0 || summary.Hyp.Segments != 0 {
		t.Errorf("side stats = %+v / %+v, want zeroed", summary.Ref, summary.Hyp)
	}
}

func TestEvaluateCERIdentical(t *testing.T) {
	segments := []subtitle.Segment{seg(0, 1, "Hello, world!")}
	report := EvaluateCER(segments, segments, 1)
	if report.CER != 0 {
		t.Errorf("CER = %v, want 0", report.CER)
	}
	if report.Accuracy != 1 {
		t.Errorf("accuracy = %v, want 1", report.Accuracy)
	}
}

func TestEvaluateCERNormalizesBeforeScoring(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 1, "Hello World")}
	hyp := []subtitle.Segment{seg(0, 1, "hello, world!")}

	report := EvaluateCER(ref, hyp, 1)
	if report.CER != 0 {
		t.Errorf("CER = %v, want 0 after normalization", report.CER)
	}
}

func TestEvaluateCERMergeWindowBridgesResegmentation(t *testing.T) {
	// Same words, different chunking. The merge window flattens both sides
	// before scoring, so only real text differences count.
	ref := []subtitle.Segment{seg(0, 2, "the quick brown fox")}
	hyp := []subtitle.Segment{
		seg(0, 1, "the quick"),
		seg(1.2, 2, "brown fox"),
	}

	report := EvaluateCER(ref, hyp, 1.5)
	if report.CER != 0 {
		t.Errorf("CER = %v, want 0 across re-segmentation", report.CER)
	}
}

func TestEvaluateCERSubstitution(t *testing.T) {
	ref := []subtitle.Segment{seg(0, 1, "abcde")}
	hyp := []subtitle.Segment{seg(0, 1, "abxde")}

	report := EvaluateCER(ref, hyp, 0)
	if math.Abs(report.CER-0.2) > 1e-9 {
		t.Errorf("CER = %v, want 0.2", report.CER)
	}
	if report.Substitutions != 1 || report.Deletions != 0 || report.Insertions != 0 {
		t.Errorf("ops = %d/%d/%d, want 1/0/0",
			report.Substitutions, report.Deletions, report.Insertions)
	}
	if report.RefLength != 5 {
		t.Errorf("ref length = %d, want 5", report.RefLength)
	}
}
