package evaluate

import (
	"asrlab/internal/subtitle"
	"asrlab/internal/textdist"
)

// SideStats describes the segment structure of one transcript.
type SideStats struct {
	Segments     int     `json:"segments"`
	Words        int     `json:"words"`
	FirstStart   float64 `json:"first_start"`
	LastEnd      float64 `json:"last_end"`
	MeanDuration float64 `json:"mean_duration"`
	MeanWords    float64 `json:"mean_words"`
}

// FileSummary is the whole-file comparison of two transcripts: overall text
// similarity, word error rate, and structural statistics per side.
type FileSummary struct {
	Similarity   float64   `json:"similarity"`
	WER          float64   `json:"wer"`
	WordLossRate float64   `json:"word_loss_rate"`
	Ref          SideStats `json:"ref"`
	Hyp          SideStats `json:"hyp"`
}

// Summarize flattens both segment lists into normalized text and compares
// them wholesale. Empty inputs degrade to zeroed stats rather than failing.
func Summarize(ref, hyp []subtitle.Segment) FileSummary {
	refText := textdist.Normalize(subtitle.PlainText(ref))
	hypText := textdist.Normalize(subtitle.PlainText(hyp))
	refWords := textdist.Words(subtitle.PlainText(ref))
	hypWords := textdist.Words(subtitle.PlainText(hyp))

	summary := FileSummary{
		Similarity: textdist.Ratio(refText, hypText),
		WER:        textdist.WER(refWords, hypWords),
		Ref:        sideStats(ref, len(refWords)),
		Hyp:        sideStats(hyp, len(hypWords)),
	}
	if len(refWords) > 0 {
		summary.WordLossRate = float64(len(refWords)-len(hypWords)) / float64(len(refWords)) * 100
	}
	return summary
}

func sideStats(segments []subtitle.Segment, words int) SideStats {
	stats := SideStats{Segments: len(segments), Words: words}
	if len(segments) == 0 {
		return stats
	}
	stats.FirstStart = segments[0].Start
	var totalDuration float64
	var totalWords int
	for _, seg := range segments {
		totalDuration += seg.Duration()
		totalWords += len(textdist.Words(seg.Text))
		if seg.End > stats.LastEnd {
			stats.LastEnd = seg.End
		}
	}
	stats.MeanDuration = totalDuration / float64(len(segments))
	stats.MeanWords = float64(totalWords) / float64(len(segments))
	return stats
}
