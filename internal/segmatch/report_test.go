package segmatch

import (
	"testing"

	"asrlab/internal/subtitle"
)

func TestSummaryCounts(t *testing.T) {
	result := &Result{Matches: []Match{
		{Kind: KindOneToOne},
		{Kind: KindOneToOne},
		{Kind: KindTextDiffOnly},
		{Kind: KindSplit},
		{Kind: KindMerged},
		{Kind: KindMissing},
		{Kind: KindTimelineMismatch},
	}}

	got := result.Summary()
	want := Summary{OneToOne: 2, TextDiffOnly: 1, Split: 1, Merged: 1, Missing: 1, TimelineMismatch: 1}
	if got != want {
		t.Errorf("Summary() = %+v, want %+v", got, want)
	}
}

func TestByKindSortsTextDiffsBySimilarity(t *testing.T) {
	result := &Result{Matches: []Match{
		{Kind: KindTextDiffOnly, Similarity: 0.9},
		{Kind: KindTextDiffOnly, Similarity: 0.3},
		{Kind: KindOneToOne, Similarity: 1},
		{Kind: KindTextDiffOnly, Similarity: 0.6},
	}}

	diffs := result.ByKind(KindTextDiffOnly)
	if len(diffs) != 3 {
		t.Fatalf("ByKind() returned %d matches, want 3", len(diffs))
	}
	if diffs[0].Similarity != 0.3 || diffs[1].Similarity != 0.6 || diffs[2].Similarity != 0.9 {
		t.Errorf("text diffs not sorted ascending: %v, %v, %v",
			diffs[0].Similarity, diffs[1].Similarity, diffs[2].Similarity)
	}
}

func TestByKindPreservesOrderForOtherKinds(t *testing.T) {
	first := seg(0, 1, "first")
	second := seg(2, 3, "second")
	result := &Result{Matches: []Match{
		{Kind: KindMissing, Sources: []subtitle.Segment{first}},
		{Kind: KindOneToOne},
		{Kind: KindMissing, Sources: []subtitle.Segment{second}},
	}}

	missing := result.ByKind(KindMissing)
	if len(missing) != 2 {
		t.Fatalf("ByKind() returned %d matches, want 2", len(missing))
	}
	if missing[0].Sources[0].Text != "first" || missing[1].Sources[0].Text != "second" {
		t.Error("ByKind() reordered non-text-diff matches")
	}
}
