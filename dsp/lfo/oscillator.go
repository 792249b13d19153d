package lfo

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
	"github.com/cwbudde/algo-bpmlfo/dsp/wavetable"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// PhaseDivisions is the number of equal reset positions per cycle
	// addressed by a phase offset.
	PhaseDivisions = 24

	// GateActive is the gate value that counts as "on". Any other value,
	// including values close to it, is "off".
	GateActive = 1.0
)

var (
	ErrNilTable    = errors.New("lfo: waveform table is nil")
	ErrBlockLength = errors.New("lfo: gate and output lengths differ")
)

// Params holds the control values for one processing block.
type Params struct {
	BPM             float64
	RateNumerator   float64
	RateDenominator float64
	Amplitude       float64
	// Phase is the retrigger position in 1/PhaseDivisions of a cycle.
	Phase float64
}

// DefaultParams returns 100 BPM, one cycle per beat, full amplitude and a
// retrigger phase of zero.
func DefaultParams() Params {
	return Params{
		BPM:             100,
		RateNumerator:   1,
		RateDenominator: 1,
		Amplitude:       1,
		Phase:           0,
	}
}

// Oscillator reads a waveform table with a fractional cursor.
type Oscillator struct {
	table  *wavetable.Table
	length float64

	cursor      float64
	increment   float64
	gateLatched bool
}

// New creates an oscillator over a freshly generated sinusoid table of
// resolution samples.
func New(resolution int) (*Oscillator, error) {
	tbl, err := wavetable.Generate(resolution)
	if err != nil {
		return nil, fmt.Errorf("lfo: %w", err)
	}
	return NewWithTable(tbl)
}

// NewWithTable creates an oscillator over an existing table. Tables are
// read-only, so one table may back many oscillators.
func NewWithTable(tbl *wavetable.Table) (*Oscillator, error) {
	if tbl == nil {
		return nil, ErrNilTable
	}
	return &Oscillator{
		table:  tbl,
		length: float64(tbl.Len()),
	}, nil
}

// Table returns the waveform table.
func (o *Oscillator) Table() *wavetable.Table { return o.table }

// TableLen returns the table length in samples.
func (o *Oscillator) TableLen() int { return o.table.Len() }

// Cursor returns the current fractional table position.
func (o *Oscillator) Cursor() float64 { return o.cursor }

// Increment returns the cursor advance per sample.
func (o *Oscillator) Increment() float64 { return o.increment }

// GateLatched reports whether the gate has stayed active since the last
// retrigger.
func (o *Oscillator) GateLatched() bool { return o.gateLatched }

// SetRate derives the cursor increment from a tempo and rhythmic ratio.
func (o *Oscillator) SetRate(bpm, numerator, denominator, sampleRate float64) {
	o.increment = PhaseIncrement(bpm, numerator, denominator, o.length, sampleRate)
}

// SetIncrement sets the cursor advance per sample directly.
func (o *Oscillator) SetIncrement(increment float64) {
	o.increment = increment
}

// Next returns the table value at the cursor and then advances the cursor
// by the increment, wrapping it into [0, TableLen()).
//
// A degenerate increment (NaN or infinite) makes the cursor NaN; Next then
// returns NaN until the next retrigger or Reactivate.
func (o *Oscillator) Next() float64 {
	c := o.cursor
	if math.IsNaN(c) {
		return c
	}
	frame := o.table.At(int(c))
	o.cursor = core.Wrap(c+o.increment, o.length)
	return frame
}

// ResetToPhase moves the cursor to phaseOffset/PhaseDivisions of a cycle.
func (o *Oscillator) ResetToPhase(phaseOffset float64) {
	o.cursor = core.Wrap(phaseOffset*o.length/PhaseDivisions, o.length)
}

// Reactivate returns the cursor to phase 0 and releases the gate latch.
// The increment is kept.
func (o *Oscillator) Reactivate() {
	o.cursor = 0
	o.gateLatched = false
}

// Gate feeds one gate sample to the edge detector. On a rising edge the
// cursor is reset to phaseOffset and Gate reports true. Holding the gate
// active does not retrigger.
func (o *Oscillator) Gate(value, phaseOffset float64) bool {
	if !o.gateLatched {
		if value == GateActive {
			o.ResetToPhase(phaseOffset)
			o.gateLatched = true
			return true
		}
		return false
	}
	if value != GateActive {
		o.gateLatched = false
	}
	return false
}

// ProcessBlock runs the gate detector and the oscillator for every sample of
// out and writes the table value scaled by amplitude.
//
// gate must be nil or as long as out; a nil gate is treated as inactive
// throughout. Neither slice is retained.
func (o *Oscillator) ProcessBlock(out, gate []float64, amplitude, phaseOffset float64) error {
	if err := checkBlock(out, gate); err != nil {
		return err
	}

	for i := range out {
		g := 0.0
		if gate != nil {
			g = gate[i]
		}
		o.Gate(g, phaseOffset)
		out[i] = o.Next()
	}
	vecmath.ScaleBlock(out, out, amplitude)
	return nil
}

// Process updates the rate from p and renders one block.
func (o *Oscillator) Process(out, gate []float64, p Params, sampleRate float64) error {
	if err := checkBlock(out, gate); err != nil {
		return err
	}
	o.SetRate(p.BPM, p.RateNumerator, p.RateDenominator, sampleRate)
	return o.ProcessBlock(out, gate, p.Amplitude, p.Phase)
}

func checkBlock(out, gate []float64) error {
	if gate != nil && len(gate) != len(out) {
		return fmt.Errorf("%w: output=%d gate=%d", ErrBlockLength, len(out), len(gate))
	}
	return nil
}
