// Package tui renders the form as an interactive terminal session built on
// survey prompts. Each control re-prompts until its value satisfies the
// field's rules, and the collected values serialize to the same shape the
// HTTP API accepts.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
	"github.com/formdeck/formdeck/pkg/validation"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Render walks the whole form, prompting for every field, and serializes the
// collected values. Options pre-fill prompts and surface server-reported
// errors ahead of the matching prompt.
func (r *Renderer) Render(ctx context.Context, s schema.Schema, opts render.Options) ([]byte, error) {
	values, err := r.Fill(ctx, s, opts.Values, opts.Errors)
	if err != nil {
		return nil, err
	}
	return r.serialize(values)
}

// Fill prompts for every field and returns the collected values keyed by
// field label, ready to submit.
func (r *Renderer) Fill(ctx context.Context, s schema.Schema, prefill map[string]any, errs map[string]string) (map[string]any, error) {
	return r.FillFields(ctx, s, s.Labels(), prefill, errs)
}

// FillFields prompts only for the named fields, carrying every other prefill
// value through untouched. Submission retries use it to re-ask just the
// fields the server rejected.
func (r *Renderer) FillFields(ctx context.Context, s schema.Schema, labels []string, prefill map[string]any, errs map[string]string) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	want := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		want[label] = struct{}{}
	}

	values := make(map[string]any, len(prefill))
	for k, v := range prefill {
		values[k] = v
	}

	for _, field := range s.Fields {
		if _, ok := want[field.Label]; !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if msg := errs[field.Label]; msg != "" {
			_ = r.driver.Info(ctx, msg)
		}
		if err := r.promptField(ctx, field, values); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (r *Renderer) promptField(ctx context.Context, field schema.Field, values map[string]any) error {
	switch field.Type {
	case schema.FieldTypeNumber:
		return r.promptNumber(ctx, field, values)
	case schema.FieldTypeSelect:
		return r.promptSelect(ctx, field, values)
	case schema.FieldTypeMultiSelect:
		return r.promptMultiSelect(ctx, field, values)
	case schema.FieldTypeTextarea:
		return r.promptTextArea(ctx, field, values)
	case schema.FieldTypeSwitch:
		return r.promptSwitch(ctx, field, values)
	default:
		return r.promptText(ctx, field, values)
	}
}

func (r *Renderer) promptText(ctx context.Context, field schema.Field, values map[string]any) error {
	defaultVal := stringAt(values, field.Label)
	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: defaultVal,
			Help:    helpFor(field),
		})
		if err != nil {
			return err
		}
		response = strings.TrimSpace(response)

		var candidate any
		if response != "" {
			candidate = response
		}
		if msg := checkField(field, candidate); msg != "" {
			_ = r.driver.Info(ctx, msg)
			defaultVal = response
			continue
		}
		if response == "" {
			delete(values, field.Label)
			return nil
		}
		values[field.Label] = response
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field schema.Field, values map[string]any) error {
	defaultVal := ""
	if existing, ok := values[field.Label]; ok {
		defaultVal = fmt.Sprint(existing)
	}
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: defaultVal,
			Help:    helpFor(field),
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)

		if input == "" {
			if msg := checkField(field, nil); msg != "" {
				_ = r.driver.Info(ctx, msg)
				continue
			}
			delete(values, field.Label)
			return nil
		}

		parsed, parseErr := strconv.ParseFloat(input, 64)
		if parseErr != nil {
			_ = r.driver.Info(ctx, checkField(field, input))
			defaultVal = input
			continue
		}
		if msg := checkField(field, parsed); msg != "" {
			_ = r.driver.Info(ctx, msg)
			defaultVal = input
			continue
		}
		values[field.Label] = parsed
		return nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field schema.Field, values map[string]any) error {
	defaultIdx := indexOf(field.Options, stringAt(values, field.Label))
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      field.Options,
			DefaultIndex: defaultIdx,
			Help:         helpFor(field),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			_ = r.driver.Info(ctx, checkField(field, ""))
			continue
		}
		choice := field.Options[idx]
		if msg := checkField(field, choice); msg != "" {
			_ = r.driver.Info(ctx, msg)
			defaultIdx = idx
			continue
		}
		values[field.Label] = choice
		return nil
	}
}

func (r *Renderer) promptMultiSelect(ctx context.Context, field schema.Field, values map[string]any) error {
	defaults := indicesOf(field.Options, stringsAt(values, field.Label))
	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  field.Label,
			Options:  field.Options,
			Defaults: defaults,
			Help:     helpFor(field),
		})
		if err != nil {
			return err
		}
		selected := defaultsFromIndices(field.Options, indices)
		if selected == nil {
			selected = []string{}
		}
		if msg := checkField(field, selected); msg != "" {
			_ = r.driver.Info(ctx, msg)
			defaults = indices
			continue
		}
		values[field.Label] = selected
		return nil
	}
}

func (r *Renderer) promptTextArea(ctx context.Context, field schema.Field, values map[string]any) error {
	defaultVal := stringAt(values, field.Label)
	for {
		response, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: defaultVal,
			Help:    helpFor(field),
		})
		if err != nil {
			return err
		}

		var candidate any
		if response != "" {
			candidate = response
		}
		if msg := checkField(field, candidate); msg != "" {
			_ = r.driver.Info(ctx, msg)
			defaultVal = response
			continue
		}
		if response == "" {
			delete(values, field.Label)
			return nil
		}
		values[field.Label] = response
		return nil
	}
}

func (r *Renderer) promptSwitch(ctx context.Context, field schema.Field, values map[string]any) error {
	defaultVal := false
	if existing, ok := values[field.Label].(bool); ok {
		defaultVal = existing
	}
	response, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: field.Label,
		Default: defaultVal,
		Help:    helpFor(field),
	})
	if err != nil {
		return err
	}
	values[field.Label] = response
	return nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(values)), nil
	}
	return json.Marshal(values)
}

// checkField runs one field's rules against a candidate value; empty string
// means the value is acceptable.
func checkField(field schema.Field, value any) string {
	probe := schema.Schema{Fields: []schema.Field{field}}
	vals := map[string]any{}
	if value != nil {
		vals[field.Label] = value
	}
	return validation.Validate(probe, vals)[field.Label]
}

func helpFor(field schema.Field) string {
	if field.Type == schema.FieldTypeDate {
		return "YYYY-MM-DD"
	}
	return field.Placeholder
}

func stringAt(values map[string]any, label string) string {
	if s, ok := values[label].(string); ok {
		return s
	}
	return ""
}

func stringsAt(values map[string]any, label string) []string {
	switch v := values[label].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, prettyValue(values[k]))
	}
	return b.String()
}

func prettyValue(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}
