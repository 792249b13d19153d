//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
	"github.com/cwbudde/algo-bpmlfo/dsp/lfo"
	"github.com/cwbudde/algo-bpmlfo/internal/render"
	"github.com/cwbudde/algo-bpmlfo/plugin"
)

const blockSize = 128

var (
	renderer *render.Renderer
	controls = plugin.DefaultControls()
	retrig   int
	funcs    []js.Func
)

func main() {
	if err := plugin.Init(nil); err != nil {
		panic(err)
	}

	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		return rebuild(sr)
	}))

	api.Set("setControls", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		p := args[0]
		for _, f := range []struct {
			key  string
			port int
		}{
			{"bpm", plugin.PortBPM},
			{"num", plugin.PortRateNumerator},
			{"den", plugin.PortRateDenominator},
			{"amp", plugin.PortAmplitude},
			{"phase", plugin.PortPhase},
		} {
			if v := p.Get(f.key); v.Type() == js.TypeNumber {
				_ = plugin.SetControl(&controls, f.port, v.Float())
			}
		}
		if renderer != nil {
			renderer.SetControls(controls)
		}
		return js.Null()
	}))

	api.Set("setRetrigger", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		retrig = args[0].Int()
		if renderer == nil {
			return js.Null()
		}
		return rebuild(renderer.Instance().SampleRate())
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if renderer == nil {
			return js.Null()
		}
		if err := renderer.Instance().Activate(); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("render", export(func(args []js.Value) any {
		if renderer == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		buf, err := renderer.Float32Samples(args[0].Int())
		if err != nil {
			return js.Global().Get("Float32Array").New(0)
		}
		arr := js.Global().Get("Float32Array").New(len(buf))
		for i, v := range buf {
			arr.SetIndex(i, v)
		}
		return arr
	}))

	api.Set("rateHz", export(func(args []js.Value) any {
		return lfo.RateHz(controls.BPM, controls.RateNumerator, controls.RateDenominator)
	}))

	js.Global().Set("BPMLFO", api)
	select {}
}

func rebuild(sampleRate float64) any {
	r, err := render.New(plugin.DescriptorAt(0), render.Config{
		Processor:      core.ApplyProcessorOptions(core.WithSampleRate(sampleRate), core.WithBlockSize(blockSize)),
		Controls:       controls,
		RetriggerEvery: retrig,
	})
	if err != nil {
		return err.Error()
	}
	if renderer != nil {
		renderer.Close()
	}
	renderer = r
	return js.Null()
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
