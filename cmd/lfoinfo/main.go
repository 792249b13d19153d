// Command lfoinfo prints tempo-to-rate tables for the bpm_lfo oscillator.
//
// Usage:
//
//	lfoinfo [flags] [ratio ...]
//
// A ratio is numerator/denominator; one LFO cycle lasts numerator/denominator
// beats. Without arguments it prints a set of common ratios.
//
// Examples:
//
//	lfoinfo 1/4 3/8
//	lfoinfo -bpm 93 -sr 44100 1/3
//	lfoinfo -grid
//	lfoinfo -measure 1/4 1/16
//	lfoinfo -measure -window blackman 3/8
//	lfoinfo -ports
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
	"github.com/cwbudde/algo-bpmlfo/dsp/window"
	"github.com/cwbudde/algo-bpmlfo/internal/logging"
	"github.com/cwbudde/algo-bpmlfo/internal/render"
	"github.com/cwbudde/algo-bpmlfo/measure/lforate"
	"github.com/cwbudde/algo-bpmlfo/plugin"
)

var defaultRatios = []string{"1/1", "1/2", "1/4", "1/8", "1/16", "3/4", "3/8", "1/3", "1/6", "1/12"}

const (
	measureCycles     = 8
	minMeasureSamples = 8192
	maxMeasureSamples = 1 << 21
)

type ratio struct {
	num, den float64
}

func (r ratio) String() string {
	return strconv.FormatFloat(r.num, 'g', -1, 64) + "/" + strconv.FormatFloat(r.den, 'g', -1, 64)
}

type row struct {
	ratio     ratio
	increment float64
	hz        float64
	cycle     float64
	measured  float64
}

type options struct {
	sampleRate float64
	bpm        float64
	oversample int
	grid       bool
	measure    bool
	ports      bool
	window     string
	ratios     []string
}

func main() {
	var opts options
	flag.Float64Var(&opts.sampleRate, "sr", 48000, "host sample rate in Hz")
	flag.Float64Var(&opts.bpm, "bpm", 120, "tempo in beats per minute")
	flag.IntVar(&opts.oversample, "oversample", 2, "table length as a multiple of the sample rate")
	flag.BoolVar(&opts.grid, "grid", false, "show every numerator/denominator of the port domains")
	flag.BoolVar(&opts.measure, "measure", false, "render each ratio and measure its rate with an FFT")
	flag.BoolVar(&opts.ports, "ports", false, "list the plugin port catalog")
	flag.StringVar(&opts.window, "window", "hann", "analysis window for -measure: rectangular, hann, hamming, blackman")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lfoinfo [flags] [ratio ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints phase increments and rates of the tempo-synchronized LFO.\n")
		fmt.Fprintf(os.Stderr, "A ratio n/d makes one cycle last n/d beats.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo 1/4 3/8\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -bpm 93 -sr 44100 1/3\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -measure 1/4 1/16\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -measure -window blackman 3/8\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -ports\n")
	}
	flag.Parse()
	opts.ratios = flag.Args()

	logger, err := logging.New(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := run(os.Stdout, logger, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, logger *slog.Logger, opts options) error {
	if err := plugin.Init(logger); err != nil {
		return err
	}
	defer plugin.Teardown()

	d := plugin.DescriptorAt(0)
	if opts.ports {
		return printPorts(w, d)
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(opts.sampleRate), core.WithTableOversampling(opts.oversample))
	if cfg.SampleRate != opts.sampleRate || cfg.TableOversampling != opts.oversample {
		return errors.New("sample rate and oversampling must be positive")
	}

	win := window.TypeHann
	if opts.measure && opts.window != "" {
		var err error
		if win, err = window.Parse(opts.window); err != nil {
			return err
		}
	}

	var ratios []ratio
	if opts.grid {
		ratios = gridRatios(d)
	} else {
		names := opts.ratios
		if len(names) == 0 {
			names = defaultRatios
		}
		for _, name := range names {
			r, err := parseRatio(name)
			if err != nil {
				logger.Warn("skipping ratio", "err", err)
				continue
			}
			ratios = append(ratios, r)
		}
	}
	if len(ratios) == 0 {
		return errors.New("no valid ratios")
	}

	warnOutOfDomain(logger, d, opts.bpm, ratios)

	rows := buildRows(ratios, opts.bpm, cfg)
	if opts.measure {
		for i := range rows {
			var err error
			rows[i].measured, err = measureRate(d, cfg, opts.bpm, rows[i], win)
			if err != nil {
				logger.Warn("measurement failed", "ratio", rows[i].ratio.String(), "err", err)
				rows[i].measured = math.NaN()
			}
		}
	}

	return printRows(w, rows, opts.bpm, cfg, opts.measure)
}

func parseRatio(s string) (ratio, error) {
	numStr, denStr, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return ratio{}, fmt.Errorf("ratio %q: want numerator/denominator", s)
	}
	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return ratio{}, fmt.Errorf("ratio %q: numerator: %w", s, err)
	}
	den, err := strconv.ParseFloat(denStr, 64)
	if err != nil {
		return ratio{}, fmt.Errorf("ratio %q: denominator: %w", s, err)
	}
	if num <= 0 || den <= 0 {
		return ratio{}, fmt.Errorf("ratio %q: numerator and denominator must be positive", s)
	}
	return ratio{num: num, den: den}, nil
}

func gridRatios(d *plugin.Descriptor) []ratio {
	numHint := d.Ports[plugin.PortRateNumerator].Hint
	denHint := d.Ports[plugin.PortRateDenominator].Hint

	var out []ratio
	for num := numHint.Lower; num <= numHint.Upper; num++ {
		for den := denHint.Lower; den <= denHint.Upper; den++ {
			out = append(out, ratio{num: num, den: den})
		}
	}
	return out
}

func warnOutOfDomain(logger *slog.Logger, d *plugin.Descriptor, bpm float64, ratios []ratio) {
	if hint := d.Ports[plugin.PortBPM].Hint; !hint.Contains(bpm) {
		logger.Warn("tempo outside the declared domain", "bpm", bpm, "lower", hint.Lower, "upper", hint.Upper)
	}
	numHint := d.Ports[plugin.PortRateNumerator].Hint
	denHint := d.Ports[plugin.PortRateDenominator].Hint
	for _, r := range ratios {
		if !numHint.Contains(r.num) || !denHint.Contains(r.den) {
			logger.Warn("ratio outside the declared domain", "ratio", r.String())
		}
	}
}

func buildRows(ratios []ratio, bpm float64, cfg core.ProcessorConfig) []row {
	tableLen := float64(cfg.TableResolution())
	rows := make([]row, len(ratios))
	for i, r := range ratios {
		rows[i] = row{
			ratio:     r,
			increment: lfo.PhaseIncrement(bpm, r.num, r.den, tableLen, cfg.SampleRate),
			hz:        lfo.RateHz(bpm, r.num, r.den),
			cycle:     lfo.CycleSamples(bpm, r.num, r.den, cfg.SampleRate),
		}
	}
	return rows
}

func measureRate(d *plugin.Descriptor, cfg core.ProcessorConfig, bpm float64, rw row, win window.Type) (float64, error) {
	n := int(math.Ceil(measureCycles * rw.cycle))
	n = max(minMeasureSamples, min(n, maxMeasureSamples))

	controls := plugin.DefaultControls()
	controls.BPM = bpm
	controls.RateNumerator = rw.ratio.num
	controls.RateDenominator = rw.ratio.den

	r, err := render.New(d, render.Config{Processor: cfg, Controls: controls})
	if err != nil {
		return 0, err
	}
	defer r.Close()

	signal, err := r.Samples(n)
	if err != nil {
		return 0, err
	}
	res, err := lforate.AnalyzeWindowed(signal, cfg.SampleRate, win)
	if err != nil {
		return 0, err
	}
	return res.FundamentalHz, nil
}

func printRows(w io.Writer, rows []row, bpm float64, cfg core.ProcessorConfig, measured bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "# bpm=%g sr=%g table=%d\n", bpm, cfg.SampleRate, cfg.TableResolution()); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	header := "Ratio\tIncrement\tRate [Hz]\tCycle [samples]\tCycle [ms]"
	rule := "-----\t---------\t---------\t---------------\t----------"
	if measured {
		header += "\tMeasured [Hz]"
		rule += "\t-------------"
	}
	if _, err := fmt.Fprintln(tw, header+"\n"+rule); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, r := range rows {
		line := fmt.Sprintf("%s\t%.6f\t%.4f\t%.2f\t%.2f",
			r.ratio, r.increment, r.hz, r.cycle, 1000*r.cycle/cfg.SampleRate)
		if measured {
			line += fmt.Sprintf("\t%.4f", r.measured)
		}
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func printPorts(w io.Writer, d *plugin.Descriptor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s (id %d): %s\n", d.Label, d.UniqueID, d.Name)
	fmt.Fprintln(tw, "Index\tName\tDirection\tKind\tRange\tDefault")
	fmt.Fprintln(tw, "-----\t----\t---------\t----\t-----\t-------")
	for i, p := range d.Ports {
		rng := "-"
		if p.Hint.Flags&(plugin.HintBoundedBelow|plugin.HintBoundedAbove) != 0 {
			rng = fmt.Sprintf("[%g, %g]", p.Hint.Lower, p.Hint.Upper)
		}
		if p.Hint.Flags&plugin.HintInteger != 0 {
			rng += " int"
		}
		if p.Hint.Flags&plugin.HintToggled != 0 {
			rng = "toggled"
		}
		def := "-"
		if v, ok := p.Hint.DefaultValue(); ok {
			def = strconv.FormatFloat(v, 'g', -1, 64)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i, p.Name, p.Direction, p.Kind, rng, def)
	}
	return tw.Flush()
}
