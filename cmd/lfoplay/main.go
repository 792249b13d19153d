// Command lfoplay plays the tempo-synchronized LFO on the default audio
// output through PortAudio.
//
// The LFO is rendered inside the PortAudio callback, one host block at a
// time, the way a plugin host drives it.
//
// Usage:
//
//	lfoplay [flags]
//
// Examples:
//
//	lfoplay -bpm 120 -den 4 -amp 0.3
//	lfoplay -retrigger-every 48000 -phase 12 -seconds 30
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
	"github.com/cwbudde/algo-bpmlfo/internal/logging"
	"github.com/cwbudde/algo-bpmlfo/internal/render"
	"github.com/cwbudde/algo-bpmlfo/plugin"
)

type options struct {
	sampleRate     int
	blockSize      int
	controls       lfo.Params
	seconds        float64
	retriggerEvery int
}

func main() {
	var opts options
	controls := plugin.DefaultControls()
	controls.Amplitude = 0.3
	flag.IntVar(&opts.sampleRate, "sr", 48000, "sample rate in Hz")
	flag.IntVar(&opts.blockSize, "block", 256, "frames per PortAudio buffer")
	flag.Float64Var(&controls.BPM, "bpm", controls.BPM, "tempo in beats per minute")
	flag.Float64Var(&controls.RateNumerator, "num", controls.RateNumerator, "rate numerator")
	flag.Float64Var(&controls.RateDenominator, "den", controls.RateDenominator, "rate denominator")
	flag.Float64Var(&controls.Amplitude, "amp", controls.Amplitude, "output amplitude in [0, 1]")
	flag.Float64Var(&controls.Phase, "phase", controls.Phase, "retrigger phase in 1/24 cycle steps")
	flag.Float64Var(&opts.seconds, "seconds", 10, "playback duration; 0 plays until interrupted")
	flag.IntVar(&opts.retriggerEvery, "retrigger-every", 0, "gate period in samples; 0 disables retriggering")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()
	opts.controls = controls

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if opts.seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.seconds*float64(time.Second)))
		defer cancel()
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("playback failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	if err := plugin.ValidateControls(opts.controls); err != nil {
		logger.Warn("control outside the declared domain", "err", err)
	}
	if err := plugin.Init(logger); err != nil {
		return err
	}
	defer plugin.Teardown()

	r, err := render.New(plugin.DescriptorAt(0), render.Config{
		Processor: core.ApplyProcessorOptions(
			core.WithSampleRate(float64(opts.sampleRate)),
			core.WithBlockSize(opts.blockSize),
		),
		Controls:       opts.controls,
		RetriggerEvery: opts.retriggerEvery,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	defer func() {
		if err := portaudio.Terminate(); err != nil {
			logger.Warn("portaudio terminate", "err", err)
		}
	}()

	var failedBlocks atomic.Int64
	callback := func(out []float32) {
		if err := r.RenderFloat32(out); err != nil {
			failedBlocks.Add(1)
			for i := range out {
				out[i] = 0
			}
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(opts.sampleRate), opts.blockSize, callback)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	logger.Info("playing",
		"bpm", opts.controls.BPM,
		"ratio", fmt.Sprintf("%g/%g", opts.controls.RateNumerator, opts.controls.RateDenominator),
		"rate_hz", lfo.RateHz(opts.controls.BPM, opts.controls.RateNumerator, opts.controls.RateDenominator),
		"block", opts.blockSize,
	)

	<-ctx.Done()

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("stop stream: %w", err)
	}
	if n := failedBlocks.Load(); n > 0 {
		logger.Warn("blocks replaced with silence", "count", n)
	}
	logger.Info("stopped", "samples", r.Position())
	return nil
}
