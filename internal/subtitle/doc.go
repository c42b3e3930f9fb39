// Package subtitle parses SRT and VTT-style subtitle files into validated
// timed segments. Malformed blocks are reported as skip diagnostics rather
// than errors so one bad cue never aborts a comparison batch.
package subtitle
