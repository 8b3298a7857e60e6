package render_test

import (
	"strings"
	"testing"

	"github.com/formdeck/formdeck/pkg/render"
)

func TestSelectThemeDefault(t *testing.T) {
	cfg, err := render.SelectTheme(render.DefaultThemeName, "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if cfg.Theme != "formdeck" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.Tokens["brand"] != "#2563eb" {
		t.Errorf("brand token = %q", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--fd-brand"] != "#2563eb" {
		t.Errorf("--fd-brand = %q", cfg.CSSVars["--fd-brand"])
	}
}

func TestSelectThemeEmptyNameResolvesDefault(t *testing.T) {
	cfg, err := render.SelectTheme("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if cfg.Theme != render.DefaultThemeName {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestSelectThemeVariantOverlay(t *testing.T) {
	cfg, err := render.SelectTheme(render.DefaultThemeName, "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if cfg.Variant != "dark" {
		t.Errorf("Variant = %q", cfg.Variant)
	}
	// Variant overrides where it defines a token, base shows through
	// elsewhere.
	if cfg.Tokens["surface"] != "#111827" {
		t.Errorf("surface token = %q", cfg.Tokens["surface"])
	}
	if cfg.Tokens["danger"] != "#dc2626" {
		t.Errorf("danger token = %q", cfg.Tokens["danger"])
	}
}

func TestSelectThemeUnknown(t *testing.T) {
	if _, err := render.SelectTheme("neon", ""); err == nil {
		t.Fatal("expected error for unknown theme")
	}
	if _, err := render.SelectTheme(render.DefaultThemeName, "sepia"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestCSSVarBlock(t *testing.T) {
	cfg := &render.ThemeConfig{
		CSSVars: map[string]string{
			"--fd-ink":   "#111827",
			"--fd-brand": "#2563eb",
		},
	}

	got := cfg.CSSVarBlock()
	want := "--fd-brand: #2563eb; --fd-ink: #111827;"
	if got != want {
		t.Errorf("CSSVarBlock() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "--fd-brand") {
		t.Errorf("declarations not sorted: %q", got)
	}
}

func TestCSSVarBlockNilSafe(t *testing.T) {
	var cfg *render.ThemeConfig
	if got := cfg.CSSVarBlock(); got != "" {
		t.Errorf("nil CSSVarBlock() = %q", got)
	}
}
