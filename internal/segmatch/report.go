package segmatch

import "sort"

// Summary holds per-kind match counts.
type Summary struct {
	OneToOne         int `json:"one_to_one"`
	TextDiffOnly     int `json:"text_diff_only"`
	Split            int `json:"split"`
	Merged           int `json:"merged"`
	Missing          int `json:"missing"`
	TimelineMismatch int `json:"timeline_mismatch"`
}

// Summary tallies the result's matches by kind.
func (r *Result) Summary() Summary {
	var s Summary
	for _, m := range r.Matches {
		switch m.Kind {
		case KindOneToOne:
			s.OneToOne++
		case KindTextDiffOnly:
			s.TextDiffOnly++
		case KindSplit:
			s.Split++
		case KindMerged:
			s.Merged++
		case KindMissing:
			s.Missing++
		case KindTimelineMismatch:
			s.TimelineMismatch++
		}
	}
	return s
}

// ByKind returns the matches of one kind in classification order, except
// text diffs, which are sorted by ascending similarity so the worst
// disagreements come first.
func (r *Result) ByKind(kind Kind) []Match {
	var out []Match
	for _, m := range r.Matches {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	if kind == KindTextDiffOnly {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Similarity < out[j].Similarity
		})
	}
	return out
}
