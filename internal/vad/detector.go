package vad

import (
	"fmt"
	"math"
)

// Detector scores one frame of audio with a speech probability or energy
// value. Implementations range from the built-in energy detector to wrappers
// around model-based classifiers; the mask builder only needs the score.
type Detector interface {
	// Score returns the frame's speech score. Higher means more speech-like.
	Score(frame []float64) float64
}

// EnergyDetector scores frames by RMS amplitude.
type EnergyDetector struct{}

// Score returns the RMS energy of the frame.
func (EnergyDetector) Score(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, v := range frame {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// BuildDetectorMask runs a frame detector over the signal and expands the
// per-frame decisions back to one boolean per sample, so downstream consumers
// see the same convention as BuildRMSMask. Frames are non-overlapping; the
// trailing partial frame is scored as-is. A frame is speech when its score is
// at or above threshold.
func BuildDetectorMask(signal []float64, sampleRate int, det Detector, frameMs float64, threshold float64) ([]bool, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("vad: sample rate must be positive, got %d", sampleRate)
	}
	if frameMs <= 0 {
		return nil, fmt.Errorf("vad: frame length must be positive, got %.2fms", frameMs)
	}
	if det == nil {
		return nil, fmt.Errorf("vad: detector is required")
	}
	if len(signal) == 0 {
		return nil, nil
	}

	frame := int(float64(sampleRate) * frameMs / 1000)
	if frame < 1 {
		frame = 1
	}

	mask := make([]bool, len(signal))
	for start := 0; start < len(signal); start += frame {
		end := start + frame
		if end > len(signal) {
			end = len(signal)
		}
		if det.Score(signal[start:end]) >= threshold {
			for i := start; i < end; i++ {
				mask[i] = true
			}
		}
	}
	return mask, nil
}
