package store

import "time"

// Run is one recorded comparison invocation: what was compared, the headline
// metric, and the full report payload as JSON for later inspection.
type Run struct {
	ID          string
	Kind        string
	Label       string
	RefPath     string
	HypPath     string
	MetricName  string
	MetricValue float64
	PayloadJSON string
	CreatedAt   time.Time
}

// Run kinds recorded by the CLI commands.
const (
	KindCompareDetail  = "compare_detail"
	KindCompareSummary = "compare_summary"
	KindCER            = "cer"
	KindWER            = "wer"
	KindVADFilter      = "vad_filter"
	KindVADCompare     = "vad_compare"
	KindVADSegments    = "vad_segments"
)
