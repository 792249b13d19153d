package plugin

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
)

func TestPortCatalog(t *testing.T) {
	ports := Ports()
	if len(ports) != PortCount {
		t.Fatalf("len(Ports()) = %d, want %d", len(ports), PortCount)
	}

	tests := []struct {
		index     int
		name      string
		direction Direction
		kind      Kind
		lower     float64
		upper     float64
	}{
		{PortOutput, "output", Output, Audio, 0, 0},
		{PortReset, "Reset", Input, Audio, 0, 0},
		{PortBPM, "Rate BPM", Input, Control, 30, 300},
		{PortRateNumerator, "Rate Numerator", Input, Control, 1, 16},
		{PortRateDenominator, "Rate Denominator", Input, Control, 1, 24},
		{PortAmplitude, "Amplitude", Input, Control, 0, 1},
		{PortPhase, "Phase", Input, Control, 0, 24},
	}
	for _, tt := range tests {
		p := ports[tt.index]
		if p.Name != tt.name || p.Direction != tt.direction || p.Kind != tt.kind {
			t.Fatalf("port %d = %v, want %s (%s %s)", tt.index, p, tt.name, tt.direction, tt.kind)
		}
		if p.Hint.Lower != tt.lower || p.Hint.Upper != tt.upper {
			t.Fatalf("port %d bounds = [%v, %v], want [%v, %v]", tt.index, p.Hint.Lower, p.Hint.Upper, tt.lower, tt.upper)
		}
	}

	if ports[PortReset].Hint.Flags&HintToggled == 0 {
		t.Fatal("Reset port must be toggled")
	}
	for _, i := range []int{PortRateNumerator, PortRateDenominator} {
		if ports[i].Hint.Flags&HintInteger == 0 {
			t.Fatalf("%s must be integer", ports[i].Name)
		}
	}
}

func TestDefaultControls(t *testing.T) {
	got := DefaultControls()
	want := lfo.DefaultParams()
	if got != want {
		t.Fatalf("DefaultControls() = %+v, want %+v", got, want)
	}
}

func TestHintDefaultValue(t *testing.T) {
	tests := []struct {
		hint PortHint
		want float64
		ok   bool
	}{
		{PortHint{Default: DefaultNone}, 0, false},
		{PortHint{Default: DefaultMinimum, Lower: 2, Upper: 6}, 2, true},
		{PortHint{Default: DefaultMiddle, Lower: 2, Upper: 6}, 4, true},
		{PortHint{Default: DefaultMaximum, Lower: 2, Upper: 6}, 6, true},
		{PortHint{Default: Default0}, 0, true},
		{PortHint{Default: Default1}, 1, true},
		{PortHint{Default: Default100}, 100, true},
	}
	for _, tt := range tests {
		got, ok := tt.hint.DefaultValue()
		if got != tt.want || ok != tt.ok {
			t.Fatalf("DefaultValue(%+v) = (%v, %v), want (%v, %v)", tt.hint, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHintContains(t *testing.T) {
	den := Ports()[PortRateDenominator].Hint
	for _, v := range []float64{1, 4, 24} {
		if !den.Contains(v) {
			t.Fatalf("denominator hint should contain %v", v)
		}
	}
	for _, v := range []float64{0, 25, 2.5, math.NaN()} {
		if den.Contains(v) {
			t.Fatalf("denominator hint should reject %v", v)
		}
	}
	if !Ports()[PortReset].Hint.Contains(0.3) {
		t.Fatal("unbounded hint should accept any value")
	}
}

func TestSetControlRoundTrip(t *testing.T) {
	var p lfo.Params
	for i := PortBPM; i < PortCount; i++ {
		if err := SetControl(&p, i, float64(i*10)); err != nil {
			t.Fatalf("SetControl(%d) error = %v", i, err)
		}
	}
	for i := PortBPM; i < PortCount; i++ {
		v, err := ControlValue(p, i)
		if err != nil {
			t.Fatalf("ControlValue(%d) error = %v", i, err)
		}
		if v != float64(i*10) {
			t.Fatalf("ControlValue(%d) = %v, want %v", i, v, float64(i*10))
		}
	}
}

func TestSetControlRejectsAudioPorts(t *testing.T) {
	var p lfo.Params
	for _, port := range []int{PortOutput, PortReset, PortCount, -1} {
		if err := SetControl(&p, port, 1); !errors.Is(err, ErrUnknownPort) {
			t.Fatalf("SetControl(%d) error = %v, want %v", port, err, ErrUnknownPort)
		}
		if _, err := ControlValue(p, port); !errors.Is(err, ErrUnknownPort) {
			t.Fatalf("ControlValue(%d) error = %v, want %v", port, err, ErrUnknownPort)
		}
	}
}

func TestValidateControls(t *testing.T) {
	if err := ValidateControls(DefaultControls()); err != nil {
		t.Fatalf("ValidateControls(defaults) error = %v", err)
	}
	p := DefaultControls()
	p.RateDenominator = 0
	if err := ValidateControls(p); err == nil {
		t.Fatal("ValidateControls() expected error for zero denominator")
	}
	p = DefaultControls()
	p.BPM = 301
	if err := ValidateControls(p); err == nil {
		t.Fatal("ValidateControls() expected error for bpm above range")
	}
}
