package core

// ProcessorConfig defines the host-facing processing settings of an LFO
// instance.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	// TableOversampling is the table length in multiples of the sample rate.
	TableOversampling int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:        48000,
		BlockSize:         1024,
		TableOversampling: 2,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithTableOversampling sets the waveform table length as a multiple of the
// sample rate.
func WithTableOversampling(factor int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if factor > 0 {
			cfg.TableOversampling = factor
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// TableResolution returns the waveform table length implied by cfg.
func (cfg ProcessorConfig) TableResolution() int {
	return int(cfg.SampleRate) * cfg.TableOversampling
}
