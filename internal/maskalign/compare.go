package maskalign

import (
	"fmt"
	"sort"

	"asrlab/internal/vad"
)

// TimedRun is a one-sided stretch reported by Compare, in seconds.
type TimedRun struct {
	Start    float64 `json:"start_sec"`
	Duration float64 `json:"duration_sec"`
}

// Stats summarizes the agreement between two aligned speech masks.
type Stats struct {
	Intersection int     `json:"intersection_samples"`
	Union        int     `json:"union_samples"`
	ACount       int     `json:"a_speech_samples"`
	BCount       int     `json:"b_speech_samples"`
	IoU          float64 `json:"iou"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	// SymmetricDiffSeconds is the total duration where exactly one mask
	// claims speech.
	SymmetricDiffSeconds float64 `json:"symmetric_diff_seconds"`
	// AOnly and BOnly list the longest runs present in only one mask,
	// sorted by duration descending, at most topN entries each.
	AOnly []TimedRun `json:"a_only_top"`
	BOnly []TimedRun `json:"b_only_top"`
}

// Compare computes overlap statistics over two equal-length masks. Precision
// is intersection over a's speech count, recall intersection over b's. Empty
// denominators score 1: two all-silent masks agree perfectly.
func Compare(a, b []bool, sampleRate, topN int) (Stats, error) {
	if len(a) != len(b) {
		return Stats{}, fmt.Errorf("maskalign: mask lengths differ: %d vs %d", len(a), len(b))
	}
	if sampleRate <= 0 {
		return Stats{}, fmt.Errorf("maskalign: sample rate must be positive, got %d", sampleRate)
	}
	if topN < 0 {
		topN = 0
	}

	var stats Stats
	aOnly := make([]bool, len(a))
	bOnly := make([]bool, len(a))
	for i := range a {
		switch {
		case a[i] && b[i]:
			stats.Intersection++
		case a[i]:
			aOnly[i] = true
		case b[i]:
			bOnly[i] = true
		}
		if a[i] {
			stats.ACount++
		}
		if b[i] {
			stats.BCount++
		}
	}
	stats.Union = stats.ACount + stats.BCount - stats.Intersection

	stats.IoU = ratioOrOne(stats.Intersection, stats.Union)
	stats.Precision = ratioOrOne(stats.Intersection, stats.ACount)
	stats.Recall = ratioOrOne(stats.Intersection, stats.BCount)
	stats.SymmetricDiffSeconds = float64(stats.ACount+stats.BCount-2*stats.Intersection) / float64(sampleRate)

	stats.AOnly = topRuns(aOnly, sampleRate, topN)
	stats.BOnly = topRuns(bOnly, sampleRate, topN)
	return stats, nil
}

func ratioOrOne(num, denom int) float64 {
	if denom == 0 {
		return 1
	}
	return float64(num) / float64(denom)
}

func topRuns(mask []bool, sampleRate, topN int) []TimedRun {
	runs := vad.Runs(mask)
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Length > runs[j].Length
	})
	if len(runs) > topN {
		runs = runs[:topN]
	}
	out := make([]TimedRun, 0, len(runs))
	for _, run := range runs {
		out = append(out, TimedRun{
			Start:    float64(run.Offset) / float64(sampleRate),
			Duration: float64(run.Length) / float64(sampleRate),
		})
	}
	return out
}
