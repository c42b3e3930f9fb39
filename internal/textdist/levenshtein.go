package textdist

// Ops breaks an edit distance down into its operation counts.
type Ops struct {
	Substitutions int
	Deletions     int
	Insertions    int
	Distance      int
}

type editOp uint8

const (
	opMatch editOp = iota
	opDelete
	opInsert
)

// editOps computes the Levenshtein distance between ref and hyp with a full
// backtrace so substitutions, deletions, and insertions are counted
// separately. When several operations yield the same minimal cost the
// backtrace prefers match/substitution, then deletion, then insertion, which
// keeps the counts deterministic.
func editOps[T comparable](ref, hyp []T) Ops {
	n, m := len(ref), len(hyp)

	dp := make([][]int, n+1)
	bt := make([][]editOp, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
		bt[i] = make([]editOp, m+1)
	}
	for i := 1; i <= n; i++ {
		dp[i][0] = i
		bt[i][0] = opDelete
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = j
		bt[0][j] = opInsert
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			best := dp[i-1][j-1] + cost
			op := opMatch
			if dp[i-1][j]+1 < best {
				best = dp[i-1][j] + 1
				op = opDelete
			}
			if dp[i][j-1]+1 < best {
				best = dp[i][j-1] + 1
				op = opInsert
			}
			dp[i][j] = best
			bt[i][j] = op
		}
	}

	var ops Ops
	ops.Distance = dp[n][m]
	i, j := n, m
	for i > 0 || j > 0 {
		switch bt[i][j] {
		case opMatch:
			if ref[i-1] != hyp[j-1] {
				ops.Substitutions++
			}
			i--
			j--
		case opDelete:
			ops.Deletions++
			i--
		case opInsert:
			ops.Insertions++
			j--
		}
	}
	return ops
}

// distance computes only the Levenshtein distance using two rolling rows.
// Identical result to editOps().Distance with O(min) memory; use it for
// character-level comparison of long transcripts where the full backtrace
// matrix would be prohibitive.
func distance[T comparable](ref, hyp []T) int {
	n, m := len(ref), len(hyp)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		curr[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			best := prev[j-1] + cost
			if prev[j]+1 < best {
				best = prev[j] + 1
			}
			if curr[j-1]+1 < best {
				best = curr[j-1] + 1
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}
	return prev[m]
}

// WordOps returns the edit operations between two token sequences.
func WordOps(ref, hyp []string) Ops {
	return editOps(ref, hyp)
}

// CharOps returns the edit operations between two strings compared rune by rune.
func CharOps(ref, hyp string) Ops {
	return editOps([]rune(ref), []rune(hyp))
}

// CharDistance returns the rune-level Levenshtein distance using the
// linear-memory variant.
func CharDistance(ref, hyp string) int {
	return distance([]rune(ref), []rune(hyp))
}

// Ratio reports how similar two strings are as a value in [0, 1].
// 1 means identical; two empty strings are considered identical.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(distance(ra, rb))/float64(longest)
}
