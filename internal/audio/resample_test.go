package audio

import (
	"math"
	"os"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResampleSameRateCopies(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out := Resample(in, 16000, 16000)
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	out[0] = 9
	if in[0] != 0.1 {
		t.Error("Resample(same rate) returned the input slice")
	}
}

func TestResampleHalvesLength(t *testing.T) {
	in := make([]float64, 1000)
	out := Resample(in, 16000, 8000)
	if len(out) != 500 {
		t.Errorf("length = %d, want 500", len(out))
	}
}

func TestResampleDoublesLength(t *testing.T) {
	in := make([]float64, 500)
	out := Resample(in, 8000, 16000)
	if len(out) != 1000 {
		t.Errorf("length = %d, want 1000", len(out))
	}
}

func TestResamplePreservesConstantSignal(t *testing.T) {
	in := make([]float64, 100)
	for i := range in {
		in[i] = 0.25
	}
	out := Resample(in, 48000, 16000)
	for i, v := range out {
		if math.Abs(v-0.25) > 1e-12 {
			t.Fatalf("sample %d = %v, want 0.25", i, v)
		}
	}
}

func TestResampleInterpolates(t *testing.T) {
	// Doubling the rate of a ramp should land midpoints between neighbors.
	in := []float64{0, 1, 2, 3}
	out := Resample(in, 1, 2)
	if len(out) != 8 {
		t.Fatalf("length = %d, want 8", len(out))
	}
	if out[1] != 0.5 || out[3] != 1.5 {
		t.Errorf("interpolated samples = %v, %v, want 0.5, 1.5", out[1], out[3])
	}
}

func TestResampleEmpty(t *testing.T) {
	if out := Resample(nil, 16000, 8000); len(out) != 0 {
		t.Errorf("Resample(nil) = %v, want empty", out)
	}
}

func TestTrimToShorter(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6}
	ta, tb := TrimToShorter(a, b)
	if len(ta) != 2 || len(tb) != 2 {
		t.Errorf("lengths = %d, %d, want 2, 2", len(ta), len(tb))
	}
	if ta[1] != 2 || tb[1] != 6 {
		t.Errorf("trimmed values = %v, %v", ta, tb)
	}
}
