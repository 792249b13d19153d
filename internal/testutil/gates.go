package testutil

// GateOn is the gate value an oscillator treats as active.
const GateOn = 1.0

// GateSequence returns a copy of values as a gate buffer.
func GateSequence(values ...float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

// Gate returns a gate buffer of length samples that is active only at the
// given indices. Out-of-range indices are ignored.
func Gate(length int, highs ...int) []float64 {
	out := make([]float64, length)
	for _, i := range highs {
		if i >= 0 && i < length {
			out[i] = GateOn
		}
	}
	return out
}

// Pulses returns a gate buffer with a pulse of width samples every period
// samples, starting at index 0. A non-positive period yields an inactive gate.
func Pulses(length, period, width int) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}
	for start := 0; start < length; start += period {
		for i := start; i < start+width && i < length; i++ {
			out[i] = GateOn
		}
	}
	return out
}

// Edges returns the indices where gate rises from inactive to active,
// assuming an inactive gate before index 0.
func Edges(gate []float64) []int {
	var edges []int
	prev := false
	for i, v := range gate {
		on := v == GateOn
		if on && !prev {
			edges = append(edges, i)
		}
		prev = on
	}
	return edges
}
