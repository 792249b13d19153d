// Command lforender renders the tempo-synchronized LFO to a mono WAV file.
//
// Usage:
//
//	lforender [flags]
//
// Examples:
//
//	lforender -out lfo.wav
//	lforender -bpm 96 -num 3 -den 8 -seconds 8 -out dotted.wav
//	lforender -retrigger-every 24000 -phase 6 -out retrig.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
	"github.com/cwbudde/algo-bpmlfo/internal/logging"
	"github.com/cwbudde/algo-bpmlfo/internal/render"
	"github.com/cwbudde/algo-bpmlfo/plugin"
)

const (
	bitDepth      = 24
	wavFormatPCM  = 1
	monoChannels  = 1
	maxRenderSecs = 3600
)

type options struct {
	out            string
	sampleRate     int
	blockSize      int
	oversample     int
	controls       lfo.Params
	seconds        float64
	retriggerEvery int
	pulseWidth     int
}

func main() {
	var opts options
	controls := plugin.DefaultControls()
	flag.StringVar(&opts.out, "out", "lfo.wav", "output WAV path")
	flag.IntVar(&opts.sampleRate, "sr", 48000, "sample rate in Hz")
	flag.IntVar(&opts.blockSize, "block", 512, "processing block size in samples")
	flag.IntVar(&opts.oversample, "oversample", 2, "table length as a multiple of the sample rate")
	flag.Float64Var(&controls.BPM, "bpm", controls.BPM, "tempo in beats per minute")
	flag.Float64Var(&controls.RateNumerator, "num", controls.RateNumerator, "rate numerator (beats per cycle numerator)")
	flag.Float64Var(&controls.RateDenominator, "den", controls.RateDenominator, "rate denominator")
	flag.Float64Var(&controls.Amplitude, "amp", controls.Amplitude, "output amplitude in [0, 1]")
	flag.Float64Var(&controls.Phase, "phase", controls.Phase, "retrigger phase in 1/24 cycle steps")
	flag.Float64Var(&opts.seconds, "seconds", 4, "duration in seconds")
	flag.IntVar(&opts.retriggerEvery, "retrigger-every", 0, "gate period in samples; 0 disables retriggering")
	flag.IntVar(&opts.pulseWidth, "pulse-width", 1, "active gate samples per retrigger period")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()
	opts.controls = controls

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := run(logger, opts); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, opts options) error {
	if opts.seconds <= 0 || opts.seconds > maxRenderSecs {
		return fmt.Errorf("duration must be in (0, %d] seconds: %v", maxRenderSecs, opts.seconds)
	}
	if err := plugin.ValidateControls(opts.controls); err != nil {
		logger.Warn("control outside the declared domain", "err", err)
	}

	if err := plugin.Init(logger); err != nil {
		return err
	}
	defer plugin.Teardown()

	cfg := render.Config{
		Processor: core.ApplyProcessorOptions(
			core.WithSampleRate(float64(opts.sampleRate)),
			core.WithBlockSize(opts.blockSize),
			core.WithTableOversampling(opts.oversample),
		),
		Controls:       opts.controls,
		RetriggerEvery: opts.retriggerEvery,
		PulseWidth:     opts.pulseWidth,
	}
	if cfg.Processor.SampleRate != float64(opts.sampleRate) {
		return fmt.Errorf("invalid sample rate: %d", opts.sampleRate)
	}

	r, err := render.New(plugin.DescriptorAt(0), cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	n := int(math.Round(opts.seconds * float64(opts.sampleRate)))
	samples, err := r.Samples(n)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := writeWAV(f, samples, opts.sampleRate); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("rendered",
		"path", opts.out,
		"samples", n,
		"rate_hz", lfo.RateHz(opts.controls.BPM, opts.controls.RateNumerator, opts.controls.RateDenominator),
		"table", r.Instance().TableLen(),
	)
	return nil
}

// writeWAV encodes samples as 24-bit mono PCM.
func writeWAV(w io.WriteSeeker, samples []float64, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, monoChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: monoChannels, SampleRate: sampleRate},
		Data:           toPCM(samples, bitDepth),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav close: %w", err)
	}
	return nil
}

// toPCM converts samples in [-1, 1] to signed integers of the given depth.
// Out-of-range values are clipped; NaN becomes silence.
func toPCM(samples []float64, depth int) []int {
	full := float64(int(1)<<(depth-1) - 1)
	out := make([]int, len(samples))
	for i, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		out[i] = int(math.Round(core.Clamp(v, -1, 1) * full))
	}
	return out
}
