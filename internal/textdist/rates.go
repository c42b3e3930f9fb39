package textdist

// WER computes the word error rate between a reference and hypothesis token
// sequence as a percentage in [0, 100+]. An empty reference scores 100 when
// the hypothesis is non-empty and 0 when both are empty.
func WER(ref, hyp []string) float64 {
	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 0
		}
		return 100
	}
	return float64(distance(ref, hyp)) / float64(len(ref)) * 100
}

// CERResult carries a character error rate with its operation breakdown.
// Rate is in [0, 1]; N is the reference length used as denominator.
type CERResult struct {
	Rate float64
	Ops  Ops
	N    int
}

// CER computes the character error rate of hyp against ref. Both inputs are
// compared rune by rune; callers normalize beforehand. The DP matrix with
// backtrace is O(n*m) in time and memory, which is fine for subtitle-scale
// text but a known limit for book-length transcripts; use CharDistance when
// only the distance matters.
func CER(ref, hyp string) CERResult {
	ops := CharOps(ref, hyp)
	n := len([]rune(ref))
	denom := n
	if denom < 1 {
		denom = 1
	}
	return CERResult{
		Rate: float64(ops.Distance) / float64(denom),
		Ops:  ops,
		N:    n,
	}
}
