// Package config loads, validates, and defaults the TOML configuration for
// asrlab. Thresholds outside their valid domain fail loading outright; bad
// input data never does.
package config
