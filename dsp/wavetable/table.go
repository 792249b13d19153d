package wavetable

import (
	"errors"
	"fmt"
	"math"
)

// MaxResolution is the largest table length Generate will allocate.
const MaxResolution = 1 << 27

var (
	ErrInvalidResolution = errors.New("wavetable: resolution must be >= 1")
	ErrAllocation        = errors.New("wavetable: table allocation failed")
	ErrNilShape          = errors.New("wavetable: shape function is nil")
)

// Shape returns the waveform value at phase in [0, 1).
type Shape func(phase float64) float64

// SineShape is one sinusoid cycle.
func SineShape(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

// Table is one cycle of a periodic waveform.
type Table struct {
	samples []float64
}

// Generate builds a sinusoid table with resolution samples.
// samples[i] = sin(2π·i/resolution).
func Generate(resolution int) (*Table, error) {
	return FromShape(resolution, SineShape)
}

// FromShape samples shape at resolution evenly spaced phases.
func FromShape(resolution int, shape Shape) (*Table, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	buf, err := allocate(resolution)
	if err != nil {
		return nil, err
	}

	n := float64(resolution)
	for i := range buf {
		buf[i] = shape(float64(i) / n)
	}
	return &Table{samples: buf}, nil
}

// FromSamples copies samples into a new table.
func FromSamples(samples []float64) (*Table, error) {
	buf, err := allocate(len(samples))
	if err != nil {
		return nil, err
	}
	copy(buf, samples)
	return &Table{samples: buf}, nil
}

func allocate(resolution int) ([]float64, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	if resolution > MaxResolution {
		return nil, fmt.Errorf("%w: %d samples exceeds %d", ErrAllocation, resolution, MaxResolution)
	}
	return make([]float64, resolution), nil
}

// Len returns the number of samples per cycle.
func (t *Table) Len() int { return len(t.samples) }

// At returns the sample at index i. i must be in [0, Len()).
func (t *Table) At(i int) float64 { return t.samples[i] }

// Samples returns a copy of the table contents.
func (t *Table) Samples() []float64 {
	out := make([]float64, len(t.samples))
	copy(out, t.samples)
	return out
}
