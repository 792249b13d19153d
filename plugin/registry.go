package plugin

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var errDuplicateLabel = errors.New("plugin: duplicate descriptor label")

// Registry enumerates plugin descriptors by index.
type Registry struct {
	mu          sync.RWMutex
	descriptors []*Descriptor
	byLabel     map[string]*Descriptor
	populated   bool
	logger      *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards log output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		byLabel: make(map[string]*Descriptor),
		logger:  logger,
	}
}

// Register appends d to the registry.
func (r *Registry) Register(d *Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.register(d)
}

func (r *Registry) register(d *Descriptor) error {
	if d == nil {
		return errors.New("plugin: nil descriptor")
	}
	if d.Label == "" {
		return errors.New("plugin: empty descriptor label")
	}
	if _, exists := r.byLabel[d.Label]; exists {
		return fmt.Errorf("%w: %s", errDuplicateLabel, d.Label)
	}
	r.descriptors = append(r.descriptors, d)
	r.byLabel[d.Label] = d
	r.logger.Debug("registered plugin", "label", d.Label, "id", d.UniqueID, "ports", d.PortCount())
	return nil
}

// Populate registers the built-in descriptors. Repeated calls are no-ops
// until Teardown; a failed call leaves the registry unpopulated.
func (r *Registry) Populate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.populated {
		return nil
	}
	if err := r.register(NewBPMLFODescriptor()); err != nil {
		return err
	}
	r.populated = true
	r.logger.Info("plugin registry initialized", "count", len(r.descriptors))
	return nil
}

// Teardown removes all descriptors.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.descriptors)
	r.descriptors = nil
	r.byLabel = make(map[string]*Descriptor)
	r.populated = false
	r.logger.Info("plugin registry torn down", "count", n)
}

// Descriptor returns the descriptor at index, or nil past the end.
func (r *Registry) Descriptor(index int) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.descriptors) {
		return nil
	}
	return r.descriptors[index]
}

// Lookup returns the descriptor with the given label, or nil.
func (r *Registry) Lookup(label string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byLabel[label]
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.descriptors)
}

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Init populates the process-wide registry. It is safe to call more than
// once; only the first call after load or Teardown takes effect.
func Init(logger *slog.Logger) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		defaultRegistry = NewRegistry(logger)
	}
	return defaultRegistry.Populate()
}

// DescriptorAt enumerates the process-wide registry. It returns nil before
// Init, after Teardown, and for indices past the end.
func DescriptorAt(index int) *Descriptor {
	defaultMu.Lock()
	r := defaultRegistry
	defaultMu.Unlock()

	if r == nil {
		return nil
	}
	return r.Descriptor(index)
}

// Teardown clears the process-wide registry.
func Teardown() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry != nil {
		defaultRegistry.Teardown()
		defaultRegistry = nil
	}
}
