package lforate

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-bpmlfo/dsp/window"
)

// MinSamples is the shortest signal Analyze accepts.
const MinSamples = 8

// silenceFloor is the per-sample magnitude below which a peak is noise.
const silenceFloor = 1e-12

var (
	ErrInvalidSampleRate = errors.New("lforate: sample rate must be positive")
	ErrShortSignal       = errors.New("lforate: signal too short")
	ErrSilentSignal      = errors.New("lforate: signal has no periodic content")
)

// Result holds the measured properties of an LFO signal.
type Result struct {
	// FundamentalHz is the interpolated frequency of the strongest component.
	FundamentalHz float64
	// Bin is the fractional FFT bin of the fundamental.
	Bin float64
	// CycleSamples is the period of the fundamental in samples.
	CycleSamples float64
	// Peak is the largest absolute sample value.
	Peak float64
	// DC is the signal mean.
	DC      float64
	FFTSize int
}

// Analyze estimates the fundamental of signal sampled at sampleRate using a
// Hann window.
func Analyze(signal []float64, sampleRate float64) (Result, error) {
	return AnalyzeWindowed(signal, sampleRate, window.TypeHann)
}

// AnalyzeWindowed is Analyze with a caller-selected analysis window.
func AnalyzeWindowed(signal []float64, sampleRate float64, win window.Type) (Result, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if len(signal) < MinSamples {
		return Result{}, fmt.Errorf("%w: %d < %d samples", ErrShortSignal, len(signal), MinSamples)
	}

	n := len(signal)
	dc, peak := 0.0, 0.0
	for _, v := range signal {
		dc += v
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	dc /= float64(n)

	buf := make([]float64, n)
	for i, v := range signal {
		buf[i] = v - dc
	}
	if err := window.ApplyCoefficientsInPlace(buf, window.Generate(win, n)); err != nil {
		return Result{}, fmt.Errorf("lforate: window: %w", err)
	}

	fftSize := nextPowerOf2(n)
	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("lforate: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("lforate: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range re {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	k := 1
	for i := 2; i < bins; i++ {
		if mag[i] > mag[k] {
			k = i
		}
	}
	if !(mag[k] > silenceFloor*float64(n)) {
		return Result{}, ErrSilentSignal
	}

	bin := float64(k) + parabolicOffset(mag, k)
	hz := bin * sampleRate / float64(fftSize)
	return Result{
		FundamentalHz: hz,
		Bin:           bin,
		CycleSamples:  sampleRate / hz,
		Peak:          peak,
		DC:            dc,
		FFTSize:       fftSize,
	}, nil
}

// parabolicOffset fits a parabola through mag[k-1..k+1] and returns the
// vertex offset from k in bins, within [-0.5, 0.5].
func parabolicOffset(mag []float64, k int) float64 {
	if k <= 0 || k >= len(mag)-1 {
		return 0
	}
	a, b, c := mag[k-1], mag[k], mag[k+1]
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	d := 0.5 * (a - c) / den
	if d > 0.5 {
		d = 0.5
	} else if d < -0.5 {
		d = -0.5
	}
	return d
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
