package plugin

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
)

var (
	ErrInvalidSampleRate = errors.New("plugin: sample rate must be a positive integer")
	ErrNotActive         = errors.New("plugin: instance is not active")
	ErrReleased          = errors.New("plugin: instance has been cleaned up")
)

// Block is one processing call's worth of host data. Output and Reset are
// borrowed for the duration of Run and never retained.
type Block struct {
	Output []float64
	// Reset is the per-sample gate; nil means inactive throughout.
	Reset    []float64
	Controls lfo.Params
}

// Instance is one running LFO bound to a sample rate.
type Instance struct {
	sampleRate float64
	osc        *lfo.Oscillator
	active     bool
}

// Instantiate creates an instance with a table of TableOversampling ×
// sampleRate samples.
func Instantiate(sampleRate float64, opts ...core.ProcessorOption) (*Instance, error) {
	opts = append(opts[:len(opts):len(opts)], core.WithSampleRate(sampleRate))
	return instantiate(sampleRate, core.ApplyProcessorOptions(opts...))
}

func instantiate(sampleRate float64, cfg core.ProcessorConfig) (*Instance, error) {
	if !(sampleRate >= 1) || !core.IsFinite(sampleRate) || sampleRate != float64(int64(sampleRate)) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	osc, err := lfo.New(cfg.TableResolution())
	if err != nil {
		return nil, fmt.Errorf("plugin: instantiate at %v Hz: %w", sampleRate, err)
	}
	return &Instance{sampleRate: sampleRate, osc: osc}, nil
}

// SampleRate returns the sample rate the instance was created for.
func (in *Instance) SampleRate() float64 { return in.sampleRate }

// TableLen returns the oscillator table length, or 0 after Cleanup.
func (in *Instance) TableLen() int {
	if in.osc == nil {
		return 0
	}
	return in.osc.TableLen()
}

// Active reports whether Run may be called.
func (in *Instance) Active() bool { return in.active }

// Activate prepares the instance for processing: the cursor returns to phase
// 0 and the gate latch is released.
func (in *Instance) Activate() error {
	if in.osc == nil {
		return ErrReleased
	}
	in.osc.Reactivate()
	in.active = true
	return nil
}

// Deactivate stops processing until the next Activate.
func (in *Instance) Deactivate() {
	in.active = false
}

// Run processes one block.
func (in *Instance) Run(b Block) error {
	if in.osc == nil {
		return ErrReleased
	}
	if !in.active {
		return ErrNotActive
	}
	return in.osc.Process(b.Output, b.Reset, b.Controls, in.sampleRate)
}

// Cleanup releases the oscillator. The instance is unusable afterwards.
func (in *Instance) Cleanup() {
	in.active = false
	in.osc = nil
}
