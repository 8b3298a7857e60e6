// Package vanilla renders the form and the submissions browser as plain
// HTML pages: no client framework, a small script for the optimistic
// clear-on-edit behaviour, and server-side validation as the ground truth.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/render/template"
	"github.com/formdeck/formdeck/pkg/schema"
)

// DefaultAction is the endpoint the rendered form posts to.
const DefaultAction = "/submit"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer template.Renderer
	action           string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer template.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAction overrides the form's submit endpoint.
func WithAction(action string) Option {
	return func(cfg *config) {
		if action != "" {
			cfg.action = action
		}
	}
}

// Renderer implements render.Renderer for browser sessions.
type Renderer struct {
	templates template.Renderer
	sanitizer *bluemonday.Policy
	action    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), action: DefaultAction}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := template.New(
			template.WithFS(cfg.templateFS),
			template.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		sanitizer: bluemonday.StrictPolicy(),
		action:    cfg.action,
	}, nil
}

var _ render.PageRenderer = (*Renderer)(nil)

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form page. Options re-populate control values and
// surface per-field validation errors inline.
func (r *Renderer) Render(_ context.Context, s schema.Schema, opts render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fields := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		fields = append(fields, renderField(field, opts))
	}

	result, err := r.templates.RenderTemplate("templates/form", map[string]any{
		"title":       s.Title,
		"description": s.Description,
		"fields":      fields,
		"action":      r.action,
		"notice":      opts.Notice,
		"has_errors":  opts.HasErrors(),
		"css_vars":    opts.Theme.CSSVarBlock(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderSubmissions produces the browser page for one page of stored
// submissions. Stored values were accepted from the outside, so strings are
// stripped of any markup before interpolation.
func (r *Renderer) RenderSubmissions(_ context.Context, view render.SubmissionsView, opts render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	rows := make([]map[string]any, 0, len(view.Rows))
	for _, row := range view.Rows {
		details := make([]map[string]string, 0, len(row.Values))
		for _, fv := range row.Values {
			details = append(details, map[string]string{
				"label": fv.Label,
				"value": r.formatValue(fv),
			})
		}
		rows = append(rows, map[string]any{
			"id":      row.ID,
			"created": row.CreatedAt.Format("Jan 02, 2006 15:04"),
			"details": details,
		})
	}

	result, err := r.templates.RenderTemplate("templates/submissions", map[string]any{
		"rows":        rows,
		"page":        view.Page,
		"limit":       view.Limit,
		"total_count": view.TotalCount,
		"total_pages": view.TotalPages,
		"sort_order":  view.SortOrder,
		"notice":      view.Notice,
		"has_prev":    view.HasPrev(),
		"has_next":    view.HasNext(),
		"prev_url":    listURL(view.Page-1, view.Limit, view.SortOrder),
		"next_url":    listURL(view.Page+1, view.Limit, view.SortOrder),
		"limit_links": limitLinks(view.SortOrder),
		"newest_url":  listURL(view.Page, view.Limit, "desc"),
		"oldest_url":  listURL(view.Page, view.Limit, "asc"),
		"css_vars":    opts.Theme.CSSVarBlock(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// formatValue renders a stored value for display: sequences joined with a
// comma separator, booleans as Yes/No.
func (r *Renderer) formatValue(fv render.FieldValue) string {
	switch v := fv.Value.(type) {
	case string:
		return r.sanitizer.Sanitize(v)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case []string:
		return r.joinSanitized(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return r.joinSanitized(out)
	case nil:
		return ""
	}
	return r.sanitizer.Sanitize(fmt.Sprint(fv.Value))
}

func (r *Renderer) joinSanitized(values []string) string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		cleaned = append(cleaned, r.sanitizer.Sanitize(v))
	}
	return strings.Join(cleaned, ", ")
}

func listURL(page, limit int, sortOrder string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sortOrder", sortOrder)
	return "/submissions?" + q.Encode()
}

// limitLinks lists the page-size choices; switching size always restarts at
// page 1.
func limitLinks(sortOrder string) []map[string]any {
	sizes := []int{10, 20, 50}
	links := make([]map[string]any, 0, len(sizes))
	for _, size := range sizes {
		links = append(links, map[string]any{
			"size": size,
			"url":  listURL(1, size, sortOrder),
		})
	}
	return links
}
