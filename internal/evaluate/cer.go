package evaluate

import (
	"asrlab/internal/subtitle"
	"asrlab/internal/textdist"
)

// CERReport is the character error rate of one hypothesis against a reference.
type CERReport struct {
	CER           float64 `json:"cer"`
	Accuracy      float64 `json:"accuracy"`
	Substitutions int     `json:"substitutions"`
	Deletions     int     `json:"deletions"`
	Insertions    int     `json:"insertions"`
	RefLength     int     `json:"ref_length"`
}

// EvaluateCER merges nearby segments on both sides, flattens them to
// normalized text, and computes the character error rate. The merge window
// smooths over re-segmentation differences so CER reflects transcription
// quality rather than chunking.
func EvaluateCER(ref, hyp []subtitle.Segment, mergeWindow float64) CERReport {
	refText := textdist.Normalize(subtitle.PlainText(subtitle.Merge(ref, mergeWindow)))
	hypText := textdist.Normalize(subtitle.PlainText(subtitle.Merge(hyp, mergeWindow)))

	result := textdist.CER(refText, hypText)
	return CERReport{
		CER:           result.Rate,
		Accuracy:      1 - result.Rate,
		Substitutions: result.Ops.Substitutions,
		Deletions:     result.Ops.Deletions,
		Insertions:    result.Ops.Insertions,
		RefLength:     result.N,
	}
}
