package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Validation failures indicate
// programmer or operator error and stop execution before any data is touched.
func (c *Config) Validate() error {
	if err := c.validateCompare(); err != nil {
		return err
	}
	if err := c.validateVAD(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCompare() error {
	for name, v := range map[string]float64{
		"compare.overlap_threshold":       c.Compare.OverlapThreshold,
		"compare.text_match_threshold":    c.Compare.TextMatchThreshold,
		"compare.near_identity_threshold": c.Compare.NearIdentityThreshold,
	} {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, v)
		}
	}
	if c.Compare.MergeWindowSeconds < 0 {
		return errors.New("compare.merge_window_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateVAD() error {
	if c.VAD.SampleRate <= 0 {
		return errors.New("vad.sample_rate must be positive")
	}
	if c.VAD.RMSWindowMs <= 0 {
		return errors.New("vad.rms_window_ms must be positive")
	}
	if c.VAD.SilenceThreshold < 0 {
		return errors.New("vad.silence_threshold must be >= 0")
	}
	if c.VAD.MinSilenceSeconds < 0 {
		return errors.New("vad.min_silence_seconds must be >= 0")
	}
	if c.VAD.AlignMaxShiftMs < 0 {
		return errors.New("vad.align_max_shift_ms must be >= 0")
	}
	// Alignment is a brute-force scan; cap the window so a typo cannot turn
	// one comparison into minutes of search.
	if c.VAD.AlignMaxShiftMs > 5000 {
		return errors.New("vad.align_max_shift_ms must be at most 5000")
	}
	if c.VAD.TopRuns < 0 {
		return errors.New("vad.top_runs must be >= 0")
	}
	if c.VAD.SegmentToleranceMs < 0 {
		return errors.New("vad.segment_tolerance_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
