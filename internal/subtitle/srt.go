package subtitle

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Skipped records one input block that could not be turned into a valid
// segment. Malformed blocks never abort a parse; callers log these and move on.
type Skipped struct {
	Block  int
	Reason string
}

// Parse reads SRT (or VTT-style) subtitle content into an ordered segment
// list. Blocks with unparsable timestamps, missing fields, or an end time
// before the start time are reported in the skipped list instead of failing
// the whole file. Segments are returned sorted by start time.
func Parse(data []byte) ([]Segment, []Skipped) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil
	}

	blocks := strings.Split(content, "\n\n")
	segments := make([]Segment, 0, len(blocks))
	var skipped []Skipped

	for blockNo, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		seg, reason := parseBlock(block, len(segments)+1)
		if reason != "" {
			skipped = append(skipped, Skipped{Block: blockNo + 1, Reason: reason})
			continue
		}
		segments = append(segments, seg)
	}

	sortByStart(segments)
	return segments, skipped
}

// ReadFile parses the subtitle file at path.
func ReadFile(path string) ([]Segment, []Skipped, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read subtitle: %w", err)
	}
	segments, skipped := Parse(data)
	return segments, skipped, nil
}

func parseBlock(block string, fallbackIndex int) (Segment, string) {
	lines := strings.Split(block, "\n")

	// Optional leading index line.
	index := fallbackIndex
	timingLine := 0
	if trimmed := strings.TrimSpace(lines[0]); !strings.Contains(trimmed, "-->") {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return Segment{}, fmt.Sprintf("first line %q is neither index nor timing", trimmed)
		}
		index = parsed
		timingLine = 1
	}

	if timingLine >= len(lines) {
		return Segment{}, "block has no timing line"
	}
	timing := lines[timingLine]
	if !strings.Contains(timing, "-->") {
		return Segment{}, fmt.Sprintf("missing --> separator in %q", strings.TrimSpace(timing))
	}
	parts := strings.SplitN(timing, "-->", 2)

	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Segment{}, err.Error()
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Segment{}, err.Error()
	}
	if end < start {
		return Segment{}, fmt.Sprintf("end %.3f before start %.3f", end, start)
	}

	text := ""
	if timingLine+1 < len(lines) {
		text = strings.TrimSpace(strings.Join(lines[timingLine+1:], " "))
	}

	return Segment{Index: index, Start: start, End: end, Text: text}, ""
}

func sortByStart(segments []Segment) {
	// Insertion sort: subtitle files are already near-sorted.
	for i := 1; i < len(segments); i++ {
		for j := i; j > 0 && segments[j].Start < segments[j-1].Start; j-- {
			segments[j], segments[j-1] = segments[j-1], segments[j]
		}
	}
}

// PlainText joins all segment text in start-time order, separated by single
// spaces. Empty segments contribute nothing.
func PlainText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, " ")
}
