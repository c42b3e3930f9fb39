package segmatch

import (
	"fmt"
	"math"

	"asrlab/internal/subtitle"
	"asrlab/internal/textdist"
)

// Kind labels the relationship of one reference segment (or, for Merged, a
// group of them) to the hypothesis segmentation.
type Kind string

const (
	// KindOneToOne is a clean 1:1 match with near-identical text.
	KindOneToOne Kind = "one_to_one"
	// KindTextDiffOnly is a 1:1 time match whose text differs meaningfully.
	KindTextDiffOnly Kind = "text_diff_only"
	// KindSplit is one reference segment covered by several hypothesis segments.
	KindSplit Kind = "split"
	// KindMerged is several reference segments collapsed into one hypothesis segment.
	KindMerged Kind = "merged"
	// KindMissing is a reference segment with no time or text counterpart.
	KindMissing Kind = "missing"
	// KindTimelineMismatch is matching text at a non-overlapping time range.
	KindTimelineMismatch Kind = "timeline_mismatch"
)

// Match is one immutable classification outcome.
type Match struct {
	Kind       Kind
	Sources    []subtitle.Segment
	Targets    []subtitle.Segment
	Similarity float64
	// MidpointDelta is the absolute midpoint distance in seconds; only
	// meaningful for timeline mismatches.
	MidpointDelta float64
}

// Options tunes the classifier thresholds.
type Options struct {
	// OverlapThreshold is the minimum overlap ratio (shared duration over the
	// shorter segment) for two segments to count as time-overlapping.
	OverlapThreshold float64
	// TextMatchThreshold is the minimum text similarity for the timeline
	// mismatch fallback when no time overlap exists.
	TextMatchThreshold float64
	// NearIdentityThreshold separates OneToOne from TextDiffOnly, and
	// rescues a disguised 1:1 out of a candidate split.
	NearIdentityThreshold float64
}

// DefaultOptions returns the tuned thresholds: boundaries shift freely across
// VAD re-segmentation, so time overlap is deliberately permissive while the
// text thresholds stay strict.
func DefaultOptions() Options {
	return Options{
		OverlapThreshold:      0.2,
		TextMatchThreshold:    0.85,
		NearIdentityThreshold: 0.95,
	}
}

func (o Options) validate() error {
	check := func(name string, v float64) error {
		if v <= 0 || v > 1 {
			return fmt.Errorf("segmatch: %s must be in (0, 1], got %g", name, v)
		}
		return nil
	}
	if err := check("overlap threshold", o.OverlapThreshold); err != nil {
		return err
	}
	if err := check("text match threshold", o.TextMatchThreshold); err != nil {
		return err
	}
	return check("near-identity threshold", o.NearIdentityThreshold)
}

// Result is the full classification of a reference segmentation against a
// hypothesis segmentation.
type Result struct {
	Matches []Match
}

// Classify matches every reference segment against the hypothesis list.
//
// The forward pass assigns each reference segment exactly one of OneToOne,
// TextDiffOnly, Split, TimelineMismatch, or Missing based on how many
// hypothesis segments it overlaps in time; text similarity breaks the
// ambiguous cases (no overlap, or several). The backward pass then visits
// hypothesis segments claimed zero times or more than once: when several
// reference segments overlap one of them, those references were merged, and
// a Merged match naming all of them is appended alongside their forward
// outcomes. A merge is only visible from the hypothesis side, which is why
// the single forward scan is not enough.
func Classify(ref, hyp []subtitle.Segment, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	refNorm := normalizeAll(ref)
	hypNorm := normalizeAll(hyp)
	claims := make([]int, len(hyp))

	result := &Result{Matches: make([]Match, 0, len(ref))}
	for i, seg := range ref {
		overlapping := overlappingIndices(seg, hyp, opts.OverlapThreshold)

		switch len(overlapping) {
		case 0:
			result.Matches = append(result.Matches, matchWithoutOverlap(seg, refNorm[i], hyp, hypNorm, claims, opts))
		case 1:
			j := overlapping[0]
			claims[j]++
			sim := textdist.Ratio(refNorm[i], hypNorm[j])
			kind := KindOneToOne
			if sim < opts.NearIdentityThreshold {
				kind = KindTextDiffOnly
			}
			result.Matches = append(result.Matches, Match{
				Kind:       kind,
				Sources:    []subtitle.Segment{seg},
				Targets:    []subtitle.Segment{hyp[j]},
				Similarity: sim,
			})
		default:
			result.Matches = append(result.Matches, matchCandidateSplit(seg, refNorm[i], hyp, hypNorm, overlapping, claims, opts))
		}
	}

	// Backward pass: a hypothesis segment claimed exactly once is a clean
	// match. Anything else that overlaps more than one reference segment is
	// a merge.
	for j, seg := range hyp {
		if claims[j] == 1 {
			continue
		}
		sources := overlappingIndices(seg, ref, opts.OverlapThreshold)
		if len(sources) <= 1 {
			continue
		}
		merged := Match{Kind: KindMerged, Targets: []subtitle.Segment{seg}}
		for _, i := range sources {
			merged.Sources = append(merged.Sources, ref[i])
		}
		result.Matches = append(result.Matches, merged)
	}

	return result, nil
}

func matchWithoutOverlap(seg subtitle.Segment, segNorm string, hyp []subtitle.Segment, hypNorm []string, claims []int, opts Options) Match {
	bestIdx, bestSim := -1, 0.0
	for j, norm := range hypNorm {
		sim := textdist.Ratio(segNorm, norm)
		if sim > bestSim && sim >= opts.TextMatchThreshold {
			bestSim = sim
			bestIdx = j
		}
	}
	if bestIdx < 0 {
		return Match{Kind: KindMissing, Sources: []subtitle.Segment{seg}}
	}
	claims[bestIdx]++
	target := hyp[bestIdx]
	return Match{
		Kind:          KindTimelineMismatch,
		Sources:       []subtitle.Segment{seg},
		Targets:       []subtitle.Segment{target},
		Similarity:    bestSim,
		MidpointDelta: math.Abs(seg.Midpoint() - target.Midpoint()),
	}
}

func matchCandidateSplit(seg subtitle.Segment, segNorm string, hyp []subtitle.Segment, hypNorm []string, overlapping []int, claims []int, opts Options) Match {
	// A spurious time split still carries the full text in one candidate;
	// near-identical text there means the match is really 1:1.
	for _, j := range overlapping {
		if sim := textdist.Ratio(segNorm, hypNorm[j]); sim > opts.NearIdentityThreshold {
			claims[j]++
			return Match{
				Kind:       KindOneToOne,
				Sources:    []subtitle.Segment{seg},
				Targets:    []subtitle.Segment{hyp[j]},
				Similarity: sim,
			}
		}
	}
	match := Match{Kind: KindSplit, Sources: []subtitle.Segment{seg}}
	for _, j := range overlapping {
		claims[j]++
		match.Targets = append(match.Targets, hyp[j])
	}
	return match
}

// overlappingIndices returns the indices of candidates whose overlap ratio
// with seg reaches the threshold. The ratio is the shared duration relative
// to the shorter of the two segments; zero-duration segments never overlap.
func overlappingIndices(seg subtitle.Segment, candidates []subtitle.Segment, threshold float64) []int {
	var out []int
	for j, other := range candidates {
		if OverlapRatio(seg, other) >= threshold {
			out = append(out, j)
		}
	}
	return out
}

// OverlapRatio computes shared duration over the shorter segment's duration.
// Returns 0 when either segment has no duration.
func OverlapRatio(a, b subtitle.Segment) float64 {
	da, db := a.Duration(), b.Duration()
	if da <= 0 || db <= 0 {
		return 0
	}
	overlap := math.Min(a.End, b.End) - math.Max(a.Start, b.Start)
	if overlap <= 0 {
		return 0
	}
	shorter := math.Min(da, db)
	return overlap / shorter
}

func normalizeAll(segments []subtitle.Segment) []string {
	out := make([]string, len(segments))
	for i, seg := range segments {
		out[i] = textdist.Normalize(seg.Text)
	}
	return out
}
