// Package template wraps pongo2 behind the small surface renderers need:
// load a template set from an fs.FS or directory, cache compiled templates,
// and render by name with a map payload.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Renderer is the seam page renderers rely on; *Engine is the default
// implementation and tests can substitute fakes.
type Renderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	globals   map[string]any
}

// WithFS loads templates from an fs.FS, typically an embed.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithBaseDir loads templates from a directory on disk, letting deployments
// override the embedded bundle.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithExtension overrides the default ".tmpl" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobals seeds context values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine is a pongo2-backed template renderer with a compile cache.
type Engine struct {
	mu          sync.RWMutex
	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	globals     pongo2.Context
	ext         string
}

var _ Renderer = (*Engine)(nil)

// New constructs an Engine from the provided options. At least one template
// source (fs or base dir) is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("template: need either a base dir or an fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("template: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("formdeck", loaders...),
		templates:   make(map[string]*pongo2.Template),
		ext:         cfg.extension,
	}
	if len(cfg.globals) > 0 {
		engine.globals = pongo2.Context(cfg.globals)
	}
	return engine, nil
}

// RenderTemplate renders a template by name. The extension is appended when
// missing, so callers can use bare names like "form".
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("template: engine is nil")
	}

	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.getTemplate(path)
	if err != nil {
		return "", err
	}

	ctx := make(pongo2.Context, len(e.globals)+len(data))
	for k, v := range e.globals {
		ctx[k] = v
	}
	for k, v := range data {
		ctx[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("template: execute %q: %w", path, err)
	}
	return buf.String(), nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: load %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}
