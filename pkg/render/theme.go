package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig is the resolved theme data handed to renderers: flat token
// values plus the CSS custom properties derived from them.
type ThemeConfig struct {
	Theme   string
	Variant string
	Tokens  map[string]string
	CSSVars map[string]string
}

// CSSVarBlock renders the variables as declarations for a <style> :root
// block, sorted for deterministic output.
func (c *ThemeConfig) CSSVarBlock() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(c.CSSVars))
	for name := range c.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(c.CSSVars[name])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

// DefaultThemeName is the built-in manifest every install carries.
const DefaultThemeName = "formdeck"

// BuiltinManifests returns the theme manifests bundled with the module.
func BuiltinManifests() []*theme.Manifest {
	return []*theme.Manifest{
		{
			Name:    DefaultThemeName,
			Version: "1.0.0",
			Tokens: map[string]string{
				"brand":   "#2563eb",
				"surface": "#ffffff",
				"ink":     "#111827",
				"muted":   "#6b7280",
				"danger":  "#dc2626",
				"border":  "#e5e7eb",
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{
						"brand":   "#60a5fa",
						"surface": "#111827",
						"ink":     "#f9fafb",
						"muted":   "#9ca3af",
						"border":  "#374151",
					},
				},
			},
		},
	}
}

// Selector resolves theme name/variant pairs against a fixed manifest set.
// It satisfies go-theme's selector contract so callers can swap in a full
// theme registry later without touching renderers.
type Selector struct {
	manifests map[string]*theme.Manifest
}

// NewSelector indexes the given manifests by name.
func NewSelector(manifests ...*theme.Manifest) *Selector {
	indexed := make(map[string]*theme.Manifest, len(manifests))
	for _, m := range manifests {
		if m != nil && m.Name != "" {
			indexed[m.Name] = m
		}
	}
	return &Selector{manifests: indexed}
}

// Select resolves a theme selection. An empty name resolves the default
// theme; an unknown name or variant is an error.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = DefaultThemeName
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// ConfigFromSelection flattens a selection into renderer-ready config:
// variant tokens overlay the base tokens, and every token becomes a
// --fd-<name> CSS variable.
func ConfigFromSelection(sel *theme.Selection) *ThemeConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}

	tokens := make(map[string]string, len(sel.Manifest.Tokens))
	for k, v := range sel.Manifest.Tokens {
		tokens[k] = v
	}
	if sel.Variant != "" {
		if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
			for k, v := range variant.Tokens {
				tokens[k] = v
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cssVars["--fd-"+k] = v
	}

	return &ThemeConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
	}
}

// SelectTheme is the convenience path used at startup: resolve name/variant
// against the built-in manifests and flatten in one call.
func SelectTheme(name, variant string) (*ThemeConfig, error) {
	sel, err := NewSelector(BuiltinManifests()...).Select(name, variant)
	if err != nil {
		return nil, err
	}
	return ConfigFromSelection(sel), nil
}
