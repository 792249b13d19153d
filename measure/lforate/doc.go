// Package lforate measures the oscillation rate of a rendered LFO signal.
//
// The signal is mean-removed, Hann-windowed and transformed with a
// zero-padded FFT; the strongest non-DC bin is refined with parabolic
// interpolation to estimate the fundamental frequency. Intended for offline
// verification and tooling, not for the audio thread.
package lforate
