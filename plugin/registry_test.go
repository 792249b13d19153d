package plugin

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/cwbudde/algo-bpmlfo/dsp/core"
)

func TestRegistryPopulate(t *testing.T) {
	r := NewRegistry(nil)
	if r.Descriptor(0) != nil {
		t.Fatal("empty registry returned a descriptor")
	}
	if err := r.Populate(); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if err := r.Populate(); err != nil {
		t.Fatalf("second Populate() error = %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	d := r.Descriptor(0)
	if d == nil || d.Label != "bpm_lfo" || d.UniqueID != BPMLFOUniqueID {
		t.Fatalf("Descriptor(0) = %+v", d)
	}
	if !d.Properties.Has(PropertyHardRTCapable | PropertyInplaceBroken) {
		t.Fatalf("Properties = %b", d.Properties)
	}
	if d.Properties.Has(PropertyRealtime) {
		t.Fatal("bpm_lfo must not require a real-time host")
	}
	if d.PortCount() != PortCount {
		t.Fatalf("PortCount() = %d, want %d", d.PortCount(), PortCount)
	}
	if r.Descriptor(1) != nil || r.Descriptor(-1) != nil {
		t.Fatal("out-of-range index returned a descriptor")
	}
	if r.Lookup("bpm_lfo") != d {
		t.Fatal("Lookup(bpm_lfo) did not return the registered descriptor")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(NewBPMLFODescriptor()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(NewBPMLFODescriptor()); err == nil {
		t.Fatal("Register() expected duplicate error")
	}
	if err := r.Register(&Descriptor{}); err == nil {
		t.Fatal("Register() expected empty label error")
	}
	if err := r.Register(nil); err == nil {
		t.Fatal("Register() expected nil descriptor error")
	}
}

func TestRegistryPopulateRetriesAfterFailure(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(&Descriptor{UniqueID: 1, Label: "bpm_lfo"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Populate(); !errors.Is(err, errDuplicateLabel) {
		t.Fatalf("Populate() error = %v, want %v", err, errDuplicateLabel)
	}
	if err := r.Populate(); !errors.Is(err, errDuplicateLabel) {
		t.Fatalf("second Populate() error = %v, want %v", err, errDuplicateLabel)
	}

	r.Teardown()
	if err := r.Populate(); err != nil {
		t.Fatalf("Populate() after Teardown error = %v", err)
	}
	if d := r.Lookup("bpm_lfo"); d == nil || d.UniqueID != BPMLFOUniqueID {
		t.Fatalf("Lookup(bpm_lfo) = %+v", d)
	}
}

func TestRegistryTeardownAndLogging(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry(slog.New(slog.NewTextHandler(&buf, nil)))
	if err := r.Populate(); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	r.Teardown()
	if r.Len() != 0 || r.Descriptor(0) != nil {
		t.Fatal("Teardown() left descriptors behind")
	}
	if err := r.Populate(); err != nil {
		t.Fatalf("Populate() after Teardown error = %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	logs := buf.String()
	for _, want := range []string{"plugin registry initialized", "plugin registry torn down"} {
		if !strings.Contains(logs, want) {
			t.Fatalf("log output missing %q:\n%s", want, logs)
		}
	}
}

func TestProcessWideRegistry(t *testing.T) {
	Teardown()
	if DescriptorAt(0) != nil {
		t.Fatal("DescriptorAt(0) before Init must be nil")
	}
	if err := Init(nil); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Init(nil); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	d := DescriptorAt(0)
	if d == nil || d.Label != "bpm_lfo" {
		t.Fatalf("DescriptorAt(0) = %+v", d)
	}
	if DescriptorAt(1) != nil {
		t.Fatal("DescriptorAt(1) must be nil")
	}

	in, err := d.Instantiate(48000)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if in.TableLen() != 96000 {
		t.Fatalf("TableLen() = %d, want 96000", in.TableLen())
	}

	Teardown()
	if DescriptorAt(0) != nil {
		t.Fatal("DescriptorAt(0) after Teardown must be nil")
	}
}

func TestDescriptorInstantiateOptions(t *testing.T) {
	d := NewBPMLFODescriptor(core.WithTableOversampling(3))
	in, err := d.Instantiate(1000)
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if in.TableLen() != 3000 {
		t.Fatalf("TableLen() = %d, want 3000", in.TableLen())
	}

	in, err = d.Instantiate(1000, core.WithTableOversampling(5))
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if in.TableLen() != 5000 {
		t.Fatalf("TableLen() = %d, want 5000", in.TableLen())
	}
}
