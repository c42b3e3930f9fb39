package maskalign

import "fmt"

// BestOffset searches shifts in [-maxShift, +maxShift] and returns the one
// that maximizes the number of positions where both masks are true after
// shifting b. A positive shift moves b earlier in time. The scan runs from
// -maxShift to +maxShift and keeps the first shift reaching the best score,
// so ties resolve to the earliest candidate in scan order; callers needing
// bit-for-bit reproducibility rely on exactly that order.
//
// The search is brute force, O(maxShift * n). Keep maxShift to sub-second
// ranges; it exists to absorb small pipeline offsets, not to find arbitrary
// lags.
func BestOffset(a, b []bool, maxShift int) (int, error) {
	if maxShift < 0 {
		return 0, fmt.Errorf("maskalign: max shift must be non-negative, got %d", maxShift)
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	best, bestScore := 0, -1
	for shift := -maxShift; shift <= maxShift; shift++ {
		score := overlapScore(a, b, n, shift)
		if score > bestScore {
			bestScore = score
			best = shift
		}
	}
	return best, nil
}

// overlapScore counts positions where a[i] and b[i+shift] are both true.
func overlapScore(a, b []bool, n, shift int) int {
	score := 0
	if shift >= 0 {
		for i := 0; i+shift < n; i++ {
			if a[i] && b[i+shift] {
				score++
			}
		}
		return score
	}
	for i := -shift; i < n; i++ {
		if a[i] && b[i+shift] {
			score++
		}
	}
	return score
}

// ShiftMask returns a copy of the mask moved shift samples earlier (positive)
// or later (negative), zero-filling the vacated region.
func ShiftMask(mask []bool, shift int) []bool {
	out := make([]bool, len(mask))
	if shift == 0 {
		copy(out, mask)
		return out
	}
	if shift > 0 {
		if shift < len(mask) {
			copy(out[:len(mask)-shift], mask[shift:])
		}
		return out
	}
	if -shift < len(mask) {
		copy(out[-shift:], mask[:len(mask)+shift])
	}
	return out
}
