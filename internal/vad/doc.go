// Package vad builds speech/silence masks from amplitude signals and applies
// long-silence suppression. Masks use one boolean per audio sample throughout;
// the frame-based detector path expands its decisions to that convention
// before anything downstream sees them.
package vad
