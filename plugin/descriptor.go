package plugin

import "github.com/cwbudde/algo-bpmlfo/dsp/core"

// Properties advertise host-relevant processing guarantees.
type Properties uint32

const (
	// PropertyRealtime marks a plugin with a host-dependent real-time
	// requirement. Unused by bpm_lfo.
	PropertyRealtime Properties = 1 << iota
	// PropertyInplaceBroken forbids the host from aliasing input and output
	// buffers.
	PropertyInplaceBroken
	// PropertyHardRTCapable allows use from a hard-real-time thread.
	PropertyHardRTCapable
)

// Has reports whether all bits of q are set.
func (p Properties) Has(q Properties) bool { return p&q == q }

// Descriptor is the host-facing description of a plugin type.
type Descriptor struct {
	UniqueID   uint32
	Label      string
	Name       string
	Maker      string
	Copyright  string
	Properties Properties
	Ports      []Port

	opts []core.ProcessorOption
}

// BPMLFOUniqueID is the unique identifier of the bpm_lfo plugin.
const BPMLFOUniqueID = 3725

// NewBPMLFODescriptor returns the descriptor of the tempo-synchronized sine
// LFO. opts tune instances created from it, e.g. the table oversampling.
func NewBPMLFODescriptor(opts ...core.ProcessorOption) *Descriptor {
	return &Descriptor{
		UniqueID:   BPMLFOUniqueID,
		Label:      "bpm_lfo",
		Name:       "Sinusoid LFO that use bpm, a numerator and a denominator to setting rate",
		Maker:      "Gilbert",
		Copyright:  "None",
		Properties: PropertyHardRTCapable | PropertyInplaceBroken,
		Ports:      Ports(),
		opts:       opts,
	}
}

// PortCount returns the number of ports.
func (d *Descriptor) PortCount() int { return len(d.Ports) }

// Instantiate creates an instance running at sampleRate. opts are applied
// after the descriptor's own options.
func (d *Descriptor) Instantiate(sampleRate float64, opts ...core.ProcessorOption) (*Instance, error) {
	all := make([]core.ProcessorOption, 0, len(d.opts)+len(opts)+1)
	all = append(all, d.opts...)
	all = append(all, opts...)
	all = append(all, core.WithSampleRate(sampleRate))
	return instantiate(sampleRate, core.ApplyProcessorOptions(all...))
}
