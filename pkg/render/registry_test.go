package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
)

type fakeRenderer struct {
	name string
}

func (f *fakeRenderer) Name() string        { return f.name }
func (f *fakeRenderer) ContentType() string { return "text/plain" }
func (f *fakeRenderer) Render(_ context.Context, _ schema.Schema, _ render.Options) ([]byte, error) {
	return []byte(f.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := render.NewRegistry()

	if err := reg.Register(&fakeRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := reg.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "vanilla" {
		t.Errorf("Name() = %q", got.Name())
	}
	if !reg.Has("vanilla") {
		t.Error("Has(vanilla) = false")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := render.NewRegistry()

	if err := reg.Register(&fakeRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(&fakeRenderer{name: "tui"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistryRejectsNilAndUnnamed(t *testing.T) {
	reg := render.NewRegistry()

	if err := reg.Register(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}
	if err := reg.Register(&fakeRenderer{}); err == nil {
		t.Fatal("expected error for unnamed renderer")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := render.NewRegistry()

	if _, err := reg.Get("missing"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := render.NewRegistry()
	for _, name := range []string{"vanilla", "json", "tui"} {
		if err := reg.Register(&fakeRenderer{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	want := []string{"json", "tui", "vanilla"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsHelpers(t *testing.T) {
	opts := render.Options{
		Values: map[string]any{"Full Name": "Ada"},
		Errors: map[string]string{"Age": "Age is required."},
	}

	if !opts.HasErrors() {
		t.Error("HasErrors() = false")
	}
	if v, ok := opts.ValueFor("Full Name"); !ok || v != "Ada" {
		t.Errorf("ValueFor(Full Name) = %v, %v", v, ok)
	}
	if _, ok := opts.ValueFor("Age"); ok {
		t.Error("ValueFor(Age) should report absence")
	}
	if got := opts.ErrorFor("Age"); got != "Age is required." {
		t.Errorf("ErrorFor(Age) = %q", got)
	}
	if got := opts.ErrorFor("Full Name"); got != "" {
		t.Errorf("ErrorFor(Full Name) = %q", got)
	}

	var empty render.Options
	if empty.HasErrors() {
		t.Error("empty Options should have no errors")
	}
}
