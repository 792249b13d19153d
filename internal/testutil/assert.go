package testutil

import (
	"math"
	"slices"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if any
// element pair differs by more than eps. NaN only matches NaN, so a
// degenerate oscillator cannot pass against a finite reference.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		return
	}
	for i := range got {
		gn, wn := math.IsNaN(got[i]), math.IsNaN(want[i])
		if gn && wn {
			continue
		}
		if gn != wn || math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("index %d: got %v, want %v (eps %v)", i, got[i], want[i], eps)
			return
		}
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite sample %v", i, v)
			return
		}
	}
}

// RequireWithinAmplitude fails t if any sample lies outside [-amp, amp].
func RequireWithinAmplitude(t testing.TB, data []float64, amp float64) {
	t.Helper()
	for i, v := range data {
		if !(v >= -amp && v <= amp) {
			t.Fatalf("index %d: %v outside [-%v, %v]", i, v, amp, amp)
			return
		}
	}
}

// RequireCursorInRange fails t unless cursor is a valid read position for a
// table of length samples.
func RequireCursorInRange(t testing.TB, cursor float64, length int) {
	t.Helper()
	if !(cursor >= 0 && cursor < float64(length)) {
		t.Fatalf("cursor %v outside [0, %d)", cursor, length)
	}
}

// RequireRetriggers fails t unless fired lists exactly the rising edges of
// gate.
func RequireRetriggers(t testing.TB, fired []int, gate []float64) {
	t.Helper()
	if want := Edges(gate); !slices.Equal(fired, want) {
		t.Fatalf("retriggers at %v, want %v", fired, want)
	}
}
