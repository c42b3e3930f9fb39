package vad

import (
	"errors"
	"fmt"
	"math"
)

// BuildRMSMask converts an amplitude signal into a per-sample speech mask.
// Each sample is marked speech when the RMS energy of a centered window
// around it is at or above threshold. The returned mask always has the same
// length as the signal: one boolean per audio sample, the convention shared
// by the suppressor and the alignment engine. Signals shorter than the
// window still produce a full-length (all-false or threshold-dependent) mask.
func BuildRMSMask(signal []float64, sampleRate int, windowMs float64, threshold float64) ([]bool, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("vad: sample rate must be positive, got %d", sampleRate)
	}
	if windowMs <= 0 {
		return nil, fmt.Errorf("vad: rms window must be positive, got %.2fms", windowMs)
	}
	if threshold < 0 {
		return nil, fmt.Errorf("vad: threshold must be non-negative, got %g", threshold)
	}
	if len(signal) == 0 {
		return nil, nil
	}

	win := int(float64(sampleRate) * windowMs / 1000)
	if win < 1 {
		win = 1
	}

	// Prefix sums of squared amplitude give each centered window in O(1).
	prefix := make([]float64, len(signal)+1)
	for i, v := range signal {
		prefix[i+1] = prefix[i] + v*v
	}

	half := win / 2
	mask := make([]bool, len(signal))
	for i := range signal {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i - half + win
		if hi > len(signal) {
			hi = len(signal)
		}
		// Divide by the nominal window size so edge samples, which see a
		// truncated window, bias toward silence the way zero padding would.
		rms := math.Sqrt((prefix[hi] - prefix[lo]) / float64(win))
		mask[i] = rms >= threshold
	}
	return mask, nil
}

// errShortMask reports mask/signal length disagreement.
var errMaskLength = errors.New("vad: mask length does not match signal length")
