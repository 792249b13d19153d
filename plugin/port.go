package plugin

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
)

// Port indices in catalog order.
const (
	PortOutput = iota
	PortReset
	PortBPM
	PortRateNumerator
	PortRateDenominator
	PortAmplitude
	PortPhase
	PortCount
)

var ErrUnknownPort = errors.New("plugin: unknown control port")

// Direction tells whether the host writes or reads a port.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Kind distinguishes per-sample buffers from per-block control values.
type Kind int

const (
	Audio Kind = iota
	Control
)

func (k Kind) String() string {
	if k == Control {
		return "control"
	}
	return "audio"
}

// HintFlags describe how a host should present and constrain a port.
type HintFlags uint32

const (
	HintBoundedBelow HintFlags = 1 << iota
	HintBoundedAbove
	HintToggled
	HintInteger
)

// DefaultHint selects a port's default value.
type DefaultHint int

const (
	DefaultNone DefaultHint = iota
	DefaultMinimum
	DefaultMiddle
	DefaultMaximum
	Default0
	Default1
	Default100
)

// PortHint carries the range metadata of a port.
type PortHint struct {
	Flags   HintFlags
	Default DefaultHint
	Lower   float64
	Upper   float64
}

// DefaultValue resolves the default hint. ok is false when the port declares
// no default.
func (h PortHint) DefaultValue() (v float64, ok bool) {
	switch h.Default {
	case DefaultMinimum:
		return h.Lower, true
	case DefaultMiddle:
		return (h.Lower + h.Upper) / 2, true
	case DefaultMaximum:
		return h.Upper, true
	case Default0:
		return 0, true
	case Default1:
		return 1, true
	case Default100:
		return 100, true
	default:
		return 0, false
	}
}

// Contains reports whether v satisfies the declared bounds and integer flag.
func (h PortHint) Contains(v float64) bool {
	if h.Flags&HintBoundedBelow != 0 && !(v >= h.Lower) {
		return false
	}
	if h.Flags&HintBoundedAbove != 0 && !(v <= h.Upper) {
		return false
	}
	if h.Flags&HintInteger != 0 && v != float64(int64(v)) {
		return false
	}
	return true
}

// Port describes one named signal of the plugin.
type Port struct {
	Name      string
	Direction Direction
	Kind      Kind
	Hint      PortHint
}

func (p Port) String() string {
	return fmt.Sprintf("%s (%s %s)", p.Name, p.Direction, p.Kind)
}

const bounded = HintBoundedBelow | HintBoundedAbove

// Ports returns the port catalog in index order.
func Ports() []Port {
	return []Port{
		PortOutput: {Name: "output", Direction: Output, Kind: Audio},
		PortReset: {
			Name: "Reset", Direction: Input, Kind: Audio,
			Hint: PortHint{Flags: HintToggled},
		},
		PortBPM: {
			Name: "Rate BPM", Direction: Input, Kind: Control,
			Hint: PortHint{Flags: bounded, Default: Default100, Lower: 30, Upper: 300},
		},
		PortRateNumerator: {
			Name: "Rate Numerator", Direction: Input, Kind: Control,
			Hint: PortHint{Flags: bounded | HintInteger, Lower: 1, Upper: 16},
		},
		PortRateDenominator: {
			Name: "Rate Denominator", Direction: Input, Kind: Control,
			Hint: PortHint{Flags: bounded | HintInteger, Lower: 1, Upper: 24},
		},
		PortAmplitude: {
			Name: "Amplitude", Direction: Input, Kind: Control,
			Hint: PortHint{Flags: bounded, Default: DefaultMaximum, Lower: 0, Upper: 1},
		},
		PortPhase: {
			Name: "Phase", Direction: Input, Kind: Control,
			Hint: PortHint{Flags: bounded, Default: DefaultMinimum, Lower: 0, Upper: lfo.PhaseDivisions},
		},
	}
}

// DefaultControls returns the control values a host would start with:
// declared defaults, or the lower bound where a port declares none.
func DefaultControls() lfo.Params {
	var p lfo.Params
	for i, port := range Ports() {
		if port.Kind != Control {
			continue
		}
		v, ok := port.Hint.DefaultValue()
		if !ok {
			v = port.Hint.Lower
		}
		_ = SetControl(&p, i, v)
	}
	return p
}

// SetControl writes value to the control field bound to port.
func SetControl(p *lfo.Params, port int, value float64) error {
	switch port {
	case PortBPM:
		p.BPM = value
	case PortRateNumerator:
		p.RateNumerator = value
	case PortRateDenominator:
		p.RateDenominator = value
	case PortAmplitude:
		p.Amplitude = value
	case PortPhase:
		p.Phase = value
	default:
		return fmt.Errorf("%w: %d", ErrUnknownPort, port)
	}
	return nil
}

// ControlValue reads the control field bound to port.
func ControlValue(p lfo.Params, port int) (float64, error) {
	switch port {
	case PortBPM:
		return p.BPM, nil
	case PortRateNumerator:
		return p.RateNumerator, nil
	case PortRateDenominator:
		return p.RateDenominator, nil
	case PortAmplitude:
		return p.Amplitude, nil
	case PortPhase:
		return p.Phase, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownPort, port)
	}
}

// ValidateControls reports the first control outside its declared domain.
// The oscillator does not call this; hosts and tools may.
func ValidateControls(p lfo.Params) error {
	ports := Ports()
	for i, port := range ports {
		if port.Kind != Control {
			continue
		}
		v, err := ControlValue(p, i)
		if err != nil {
			return err
		}
		if !port.Hint.Contains(v) {
			return fmt.Errorf("plugin: %s = %v outside [%v, %v]", port.Name, v, port.Hint.Lower, port.Hint.Upper)
		}
	}
	return nil
}
