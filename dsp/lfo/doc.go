// Package lfo implements a tempo-synchronized table-lookup low-frequency
// oscillator.
//
// The oscillation rate is derived from a tempo in beats per minute and a
// rhythmic ratio numerator/denominator: one cycle lasts numerator/denominator
// beats. An external per-sample gate retriggers the cycle at a configurable
// phase on each rising edge.
//
// An [Oscillator] is intended for a single real-time audio thread. Apart from
// construction, none of its methods allocate, lock or block.
package lfo
