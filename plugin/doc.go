// Package plugin adapts the tempo-synchronized LFO to a host plugin
// boundary.
//
// It publishes a [Descriptor] with the port catalog a host needs to build
// its control surface, creates [Instance] values bound to a sample rate and
// processes blocks whose buffers the host lends for the duration of one
// [Instance.Run] call. A process-wide registry enumerates the available
// descriptors; the oscillator itself never touches it.
package plugin
