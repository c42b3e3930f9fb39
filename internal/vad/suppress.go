package vad

import "fmt"

// SuppressLongSilence zeroes samples inside every maximal silence run whose
// duration is at least minDuration seconds. Speech samples and short silences
// pass through untouched, and the output always has the same length as the
// input: the filter changes amplitude, never timing. A mask with no speech at
// all is treated as one endless silence run and the whole signal is zeroed.
// Returns the processed copy and the number of samples silenced.
func SuppressLongSilence(signal []float64, mask []bool, minDuration float64, sampleRate int) ([]float64, int, error) {
	if sampleRate <= 0 {
		return nil, 0, fmt.Errorf("vad: sample rate must be positive, got %d", sampleRate)
	}
	if minDuration < 0 {
		return nil, 0, fmt.Errorf("vad: min silence duration must be non-negative, got %g", minDuration)
	}
	if len(mask) != len(signal) {
		return nil, 0, fmt.Errorf("%w: signal %d, mask %d", errMaskLength, len(signal), len(mask))
	}

	processed := make([]float64, len(signal))
	copy(processed, signal)

	if !anySpeech(mask) {
		for i := range processed {
			processed[i] = 0
		}
		return processed, len(processed), nil
	}

	silenced := 0
	runStart := -1
	for i := 0; i <= len(mask); i++ {
		inSilence := i < len(mask) && !mask[i]
		if inSilence && runStart < 0 {
			runStart = i
			continue
		}
		if !inSilence && runStart >= 0 {
			runLen := i - runStart
			if float64(runLen)/float64(sampleRate) >= minDuration {
				for j := runStart; j < i; j++ {
					processed[j] = 0
				}
				silenced += runLen
			}
			runStart = -1
		}
	}
	return processed, silenced, nil
}

func anySpeech(mask []bool) bool {
	for _, v := range mask {
		if v {
			return true
		}
	}
	return false
}
