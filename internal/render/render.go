// Package render drives a plugin instance block by block for the commands,
// generating the periodic retrigger gate a host sequencer would supply.
package render

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
	"github.com/cwbudde/algo-bpmlfo/plugin"
)

var ErrNilDescriptor = errors.New("render: descriptor is nil")

// Config describes a rendering session.
type Config struct {
	Processor core.ProcessorConfig
	Controls  lfo.Params
	// RetriggerEvery is the gate period in samples; 0 disables the gate.
	RetriggerEvery int
	// PulseWidth is the number of active gate samples per period. Values
	// below 1 are treated as 1.
	PulseWidth int
}

// Renderer produces LFO output through a plugin instance.
type Renderer struct {
	inst     *plugin.Instance
	cfg      Config
	gate     []float64
	scratch  []float64
	position int
}

// New instantiates and activates an instance of d.
func New(d *plugin.Descriptor, cfg Config) (*Renderer, error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	if cfg.PulseWidth < 1 {
		cfg.PulseWidth = 1
	}
	if cfg.Processor.BlockSize < 1 {
		return nil, fmt.Errorf("render: block size must be >= 1: %d", cfg.Processor.BlockSize)
	}
	if cfg.RetriggerEvery < 0 {
		return nil, fmt.Errorf("render: retrigger period must be >= 0: %d", cfg.RetriggerEvery)
	}
	inst, err := d.Instantiate(cfg.Processor.SampleRate, core.WithTableOversampling(cfg.Processor.TableOversampling))
	if err != nil {
		return nil, err
	}
	if err := inst.Activate(); err != nil {
		return nil, err
	}

	r := &Renderer{inst: inst, cfg: cfg}
	r.gate = make([]float64, cfg.Processor.BlockSize)
	r.scratch = make([]float64, cfg.Processor.BlockSize)
	return r, nil
}

// Instance returns the underlying plugin instance.
func (r *Renderer) Instance() *plugin.Instance { return r.inst }

// Position returns the number of samples rendered so far.
func (r *Renderer) Position() int { return r.position }

// SetControls replaces the control values used from the next block on.
func (r *Renderer) SetControls(p lfo.Params) { r.cfg.Controls = p }

// Render fills out in blocks of at most the configured block size.
func (r *Renderer) Render(out []float64) error {
	for start := 0; start < len(out); {
		n := min(len(out)-start, r.cfg.Processor.BlockSize)
		if err := r.block(out[start : start+n]); err != nil {
			return err
		}
		start += n
	}
	return nil
}

// RenderFloat32 fills out like Render, converting to float32. It does not
// allocate once out fits the configured block size.
func (r *Renderer) RenderFloat32(out []float32) error {
	for start := 0; start < len(out); {
		n := min(len(out)-start, r.cfg.Processor.BlockSize)
		buf := r.scratch[:n]
		if err := r.block(buf); err != nil {
			return err
		}
		for i, v := range buf {
			out[start+i] = float32(v)
		}
		start += n
	}
	return nil
}

// Samples renders n samples into a new slice. A negative n renders nothing.
func (r *Renderer) Samples(n int) ([]float64, error) {
	out := make([]float64, max(n, 0))
	if err := r.Render(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Float32Samples is Samples for float32 consumers.
func (r *Renderer) Float32Samples(n int) ([]float32, error) {
	out := make([]float32, max(n, 0))
	if err := r.RenderFloat32(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the instance.
func (r *Renderer) Close() {
	r.inst.Cleanup()
}

func (r *Renderer) block(out []float64) error {
	var gate []float64
	if r.cfg.RetriggerEvery > 0 {
		gate = r.gate[:len(out)]
		for i := range gate {
			if (r.position+i)%r.cfg.RetriggerEvery < r.cfg.PulseWidth {
				gate[i] = lfo.GateActive
			} else {
				gate[i] = 0
			}
		}
	}
	if err := r.inst.Run(plugin.Block{Output: out, Reset: gate, Controls: r.cfg.Controls}); err != nil {
		return err
	}
	r.position += len(out)
	return nil
}
