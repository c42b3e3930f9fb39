package audio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWriteReadMonoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")

	// 100ms 440Hz sine at 16kHz.
	rate := 16000
	samples := make([]float64, rate/10)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
	}

	if err := WriteMono(path, rate, samples); err != nil {
		t.Fatalf("WriteMono() error: %v", err)
	}

	gotRate, got, err := ReadMono(path)
	if err != nil {
		t.Fatalf("ReadMono() error: %v", err)
	}
	if gotRate != rate {
		t.Errorf("sample rate = %d, want %d", gotRate, rate)
	}
	if len(got) != len(samples) {
		t.Fatalf("sample count = %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		// 16-bit quantization allows roughly 1/32768 of error.
		if math.Abs(got[i]-samples[i]) > 1e-3 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], samples[i])
		}
	}
}

func TestWriteMonoClampsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipped.wav")
	if err := WriteMono(path, 8000, []float64{2.0, -2.0, 0}); err != nil {
		t.Fatalf("WriteMono() error: %v", err)
	}

	_, got, err := ReadMono(path)
	if err != nil {
		t.Fatalf("ReadMono() error: %v", err)
	}
	if got[0] < 0.99 || got[1] > -0.99 {
		t.Errorf("clamped samples = %v, %v, want near ±1", got[0], got[1])
	}
}

func TestWriteMonoInvalidRate(t *testing.T) {
	if err := WriteMono(filepath.Join(t.TempDir(), "x.wav"), 0, []float64{0}); err == nil {
		t.Error("zero sample rate accepted")
	}
}

func TestReadMonoMissingFile(t *testing.T) {
	if _, _, err := ReadMono(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestReadMonoRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	writeFile(t, path, []byte("this is not a wav file at all"))
	if _, _, err := ReadMono(path); err == nil {
		t.Error("non-WAV content accepted")
	}
}
