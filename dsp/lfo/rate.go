package lfo

const secondsPerMinute = 60

// PhaseIncrement returns the table cursor advance per output sample for a
// table of tableLength samples.
//
// No validation is performed: a zero numerator or sample rate yields an
// infinite or NaN increment.
func PhaseIncrement(bpm, numerator, denominator, tableLength, sampleRate float64) float64 {
	return (denominator * bpm * tableLength) / (numerator * secondsPerMinute * sampleRate)
}

// RateHz returns the oscillation frequency in Hz.
func RateHz(bpm, numerator, denominator float64) float64 {
	return (denominator * bpm) / (numerator * secondsPerMinute)
}

// CycleSamples returns the length of one oscillation cycle in samples.
func CycleSamples(bpm, numerator, denominator, sampleRate float64) float64 {
	return (numerator * secondsPerMinute * sampleRate) / (denominator * bpm)
}
