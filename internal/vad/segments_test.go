package vad

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestRuns(t *testing.T) {
	tests := []struct {
		name string
		mask []bool
		want []Run
	}{
		{"empty", nil, nil},
		{"all false", []bool{false, false}, nil},
		{"all true", []bool{true, true, true}, []Run{{Offset: 0, Length: 3}}},
		{"two runs", []bool{true, false, false, true, true}, []Run{{Offset: 0, Length: 1}, {Offset: 3, Length: 2}}},
		{"trailing run", []bool{false, true}, []Run{{Offset: 1, Length: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Runs(tt.mask)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Runs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentsFromMask(t *testing.T) {
	mask := []bool{false, false, true, true, true, false, true, false}
	spans := SegmentsFromMask(mask, 2)
	want := []Span{{Start: 1, End: 2.5}, {Start: 3, End: 3.5}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("SegmentsFromMask() = %v, want %v", spans, want)
	}
}

func TestMaskFromSpansRoundTrip(t *testing.T) {
	mask := []bool{false, true, true, false, false, true, true, true}
	spans := SegmentsFromMask(mask, 4)
	back := MaskFromSpans(spans, 4, len(mask))
	if !reflect.DeepEqual(back, mask) {
		t.Errorf("round trip mask = %v, want %v", back, mask)
	}
}

func TestMaskFromSpansClipsOutOfRange(t *testing.T) {
	spans := []Span{{Start: -1, End: 0.5}, {Start: 10, End: 20}}
	mask := MaskFromSpans(spans, 2, 4)
	want := []bool{true, false, false, false}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("MaskFromSpans() = %v, want %v", mask, want)
	}
}

func TestSegmentsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.segments.json")
	spans := []Span{{Start: 0.5, End: 1.25}, {Start: 3, End: 4.5}}

	if err := WriteSegmentsFile(path, 16000, spans); err != nil {
		t.Fatalf("WriteSegmentsFile() error: %v", err)
	}

	rate, got, skipped, err := ReadSegmentsFile(path)
	if err != nil {
		t.Fatalf("ReadSegmentsFile() error: %v", err)
	}
	if rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if !reflect.DeepEqual(got, spans) {
		t.Errorf("spans = %v, want %v", got, spans)
	}
}

func TestReadSegmentsFileDropsInvertedSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.segments.json")
	if err := WriteSegmentsFile(path, 8000, []Span{{Start: 2, End: 1}, {Start: 3, End: 4}}); err != nil {
		t.Fatalf("WriteSegmentsFile() error: %v", err)
	}

	_, spans, skipped, err := ReadSegmentsFile(path)
	if err != nil {
		t.Fatalf("ReadSegmentsFile() error: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(spans) != 1 || spans[0].Start != 3 {
		t.Errorf("spans = %v, want the valid span only", spans)
	}
}

func TestReadSegmentsFileMissing(t *testing.T) {
	if _, _, _, err := ReadSegmentsFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("missing file accepted")
	}
}
