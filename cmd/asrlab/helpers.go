package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"asrlab/internal/config"
	"asrlab/internal/subtitle"
)

// loadSubtitles reads an SRT file and reports malformed blocks on out before
// returning whatever parsed cleanly.
func loadSubtitles(path string, out io.Writer) ([]subtitle.Segment, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}
	segments, skipped, err := subtitle.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		fmt.Fprintf(out, "Skipped block %d in %s: %s\n", s.Block, filepath.Base(expanded), s.Reason)
	}
	return segments, nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.3fs", v)
}

// excerpt trims segment text to a single table-friendly line.
func excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return text
}

func defaultLabel(refPath, hypPath string) string {
	return fmt.Sprintf("%s vs %s", filepath.Base(refPath), filepath.Base(hypPath))
}
