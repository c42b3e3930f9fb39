package config

// Default returns the configuration defaults applied before any file is read.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: "~/.local/share/asrlab",
			LogDir:  "~/.local/share/asrlab/logs",
		},
		Compare: Compare{
			OverlapThreshold:      0.2,
			TextMatchThreshold:    0.85,
			NearIdentityThreshold: 0.95,
			MergeWindowSeconds:    1.5,
		},
		VAD: VAD{
			SampleRate:         16000,
			RMSWindowMs:        20,
			SilenceThreshold:   1e-4,
			MinSilenceSeconds:  1.0,
			AlignMaxShiftMs:    500,
			TopRuns:            15,
			SegmentToleranceMs: 50,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
