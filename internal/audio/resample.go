package audio

// Resample converts samples from one rate to another using linear
// interpolation. That is enough fidelity for mask building and energy
// analysis; it is not a production resampler for listening quality.
func Resample(samples []float64, from, to int) []float64 {
	if from == to || from <= 0 || to <= 0 || len(samples) == 0 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	n := len(samples) * to / from
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	ratio := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = samples[idx] + frac*(samples[idx+1]-samples[idx])
	}
	return out
}

// TrimToShorter truncates both signals to their common length so positional
// comparisons stay fair when two files differ by a few trailing samples.
func TrimToShorter(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[:n], b[:n]
}
