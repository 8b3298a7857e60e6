// Package render defines the contract between the form definition and the
// views that present it: a Renderer turns a schema plus per-request options
// into output for one surface (HTML page, terminal session), and a Registry
// lets callers pick renderers by name.
package render

import (
	"context"

	"github.com/formdeck/formdeck/pkg/schema"
)

// Renderer produces a complete form view for one output surface.
type Renderer interface {
	// Name is the registry key, e.g. "vanilla" or "tui".
	Name() string
	// ContentType reports the MIME type of Render's output.
	ContentType() string
	// Render produces the form view. Options carry per-request state: values
	// to re-populate and server-side validation errors to surface inline.
	Render(ctx context.Context, s schema.Schema, opts Options) ([]byte, error)
}

// PageRenderer is a Renderer that can also present stored submissions, which
// is what the server needs to drive its browser pages. Terminal renderers
// deliberately stop at Renderer.
type PageRenderer interface {
	Renderer
	RenderSubmissions(ctx context.Context, view SubmissionsView, opts Options) ([]byte, error)
}

// Options describe per-request data renderers use to customise output
// without touching the schema itself.
type Options struct {
	// Values re-populates controls, keyed by field label. Shapes follow the
	// field type: string, float64, []string, bool.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field label.
	// The server's validation pass is authoritative; renderers only display
	// what they are given.
	Errors map[string]string
	// Notice is a form-level message shown above the fields ("Please fix the
	// errors below.", success confirmations).
	Notice string
	// Theme is the resolved theme handed to renderers that support themed
	// chrome. Nil means renderer defaults.
	Theme *ThemeConfig
}

// HasErrors reports whether any field-level error is present.
func (o Options) HasErrors() bool {
	return len(o.Errors) > 0
}

// ValueFor returns the in-progress value for a field label, if any.
func (o Options) ValueFor(label string) (any, bool) {
	if o.Values == nil {
		return nil, false
	}
	v, ok := o.Values[label]
	return v, ok
}

// ErrorFor returns the error message for a field label, or "".
func (o Options) ErrorFor(label string) string {
	if o.Errors == nil {
		return ""
	}
	return o.Errors[label]
}
