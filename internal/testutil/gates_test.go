package testutil

import (
	"reflect"
	"testing"
)

func TestGate(t *testing.T) {
	got := Gate(5, 1, 3, 9, -1)
	want := []float64{0, 1, 0, 1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Gate() = %v, want %v", got, want)
	}
}

func TestPulses(t *testing.T) {
	got := Pulses(7, 3, 2)
	want := []float64{1, 1, 0, 1, 1, 0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Pulses() = %v, want %v", got, want)
	}
	if got := Pulses(3, 0, 1); !reflect.DeepEqual(got, []float64{0, 0, 0}) {
		t.Fatalf("Pulses(period=0) = %v, want all zero", got)
	}
}

func TestEdges(t *testing.T) {
	got := Edges(GateSequence(0, 0, 1, 1, 0, 1))
	want := []int{2, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Edges() = %v, want %v", got, want)
	}
	if got := Edges(GateSequence(0.999, 0.5)); got != nil {
		t.Fatalf("Edges() = %v, want none", got)
	}
}
