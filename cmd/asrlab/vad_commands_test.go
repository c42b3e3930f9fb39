package main

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asrlab/internal/audio"
)

// writeToneWAV writes a mono WAV with silence on both sides of a tone burst.
func writeToneWAV(t *testing.T, path string, rate int, seconds float64) {
	t.Helper()

	total := int(float64(rate) * seconds)
	samples := make([]float64, total)
	start := total / 4
	end := 3 * total / 4
	for i := start; i < end; i++ {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
	}
	if err := audio.WriteMono(path, rate, samples); err != nil {
		t.Fatalf("write wav: %v", err)
	}
}

func TestVADFilterWritesOutputs(t *testing.T) {
	configPath := writeCLIConfig(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "in.wav")
	writeToneWAV(t, input, 16000, 4)

	output := filepath.Join(dir, "out.wav")
	stdout, _, err := runCLI(t, configPath, "vad", "filter", input, "-o", output)
	if err != nil {
		t.Fatalf("vad filter: %v", err)
	}
	requireContains(t, stdout, "Speech segments")
	requireContains(t, stdout, output)

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected filtered wav: %v", err)
	}
	segmentsPath := strings.TrimSuffix(output, ".wav") + ".segments.json"
	data, err := os.ReadFile(segmentsPath)
	if err != nil {
		t.Fatalf("expected segments sidecar: %v", err)
	}
	var sidecar struct {
		SampleRate  int `json:"sample_rate"`
		NumSegments int `json:"num_segments"`
	}
	if err := json.Unmarshal(data, &sidecar); err != nil {
		t.Fatalf("decode sidecar: %v", err)
	}
	if sidecar.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", sidecar.SampleRate)
	}
	if sidecar.NumSegments == 0 {
		t.Error("expected at least one speech segment")
	}
}

func TestVADCompareIdenticalFiles(t *testing.T) {
	configPath := writeCLIConfig(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "a.wav")
	writeToneWAV(t, input, 16000, 2)

	csvPath := filepath.Join(dir, "segments.csv")
	stdout, _, err := runCLI(t, configPath, "vad", "compare", input, input, "--json", "--csv", csvPath)
	if err != nil {
		t.Fatalf("vad compare: %v", err)
	}

	var report struct {
		OffsetSamples int `json:"offset_samples"`
		Stats         struct {
			IoU float64 `json:"iou"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, stdout)
	}
	if report.OffsetSamples != 0 {
		t.Errorf("OffsetSamples = %d, want 0", report.OffsetSamples)
	}
	if report.Stats.IoU != 1 {
		t.Errorf("IoU = %v, want 1", report.Stats.IoU)
	}

	csvData, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("expected csv export: %v", err)
	}
	requireContains(t, string(csvData), "file,index,start,end,duration")
}

func TestVADSegmentsComparesSidecars(t *testing.T) {
	configPath := writeCLIConfig(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "in.wav")
	writeToneWAV(t, input, 16000, 2)

	output := filepath.Join(dir, "out.wav")
	if _, _, err := runCLI(t, configPath, "vad", "filter", input, "-o", output); err != nil {
		t.Fatalf("vad filter: %v", err)
	}
	sidecar := strings.TrimSuffix(output, ".wav") + ".segments.json"

	stdout, _, err := runCLI(t, configPath, "vad", "segments", sidecar, sidecar, "--json")
	if err != nil {
		t.Fatalf("vad segments: %v", err)
	}
	var report struct {
		Comparison struct {
			Common  int `json:"common"`
			Matched int `json:"matched"`
		} `json:"comparison"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, stdout)
	}
	if report.Comparison.Common == 0 {
		t.Fatal("expected compared pairs")
	}
	if report.Comparison.Matched != report.Comparison.Common {
		t.Errorf("Matched = %d, want %d", report.Comparison.Matched, report.Comparison.Common)
	}
}
