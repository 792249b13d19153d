// Package wavetable builds single-cycle waveform tables for table-lookup
// oscillators.
//
// A [Table] holds exactly one period of a waveform sampled at a fixed
// resolution, with phase 0 at index 0. Tables are immutable after
// construction and safe to share between oscillators.
package wavetable
