// Package audio loads and stores WAV files as mono float signals and
// provides the light resampling the analysis pipeline needs. Comparisons
// expect 16 kHz mono; callers resample at this boundary before masks are
// built.
package audio
