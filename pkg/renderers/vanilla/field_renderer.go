package vanilla

import (
	"fmt"
	"html"
	"strings"

	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
)

// renderField builds the markup for one form control: wrapper, label,
// type-appropriate widget, and the inline error paragraph when the options
// carry a message for this field.
func renderField(field schema.Field, opts render.Options) string {
	errText := opts.ErrorFor(field.Label)

	var b strings.Builder
	b.Grow(512)

	b.WriteString(`<div class="form-field" data-field="`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`">`)

	switch field.Type {
	case schema.FieldTypeText, schema.FieldTypeNumber, schema.FieldTypeDate:
		writeLabel(&b, field)
		writeInput(&b, field, opts, errText)
	case schema.FieldTypeTextarea:
		writeLabel(&b, field)
		writeTextarea(&b, field, opts, errText)
	case schema.FieldTypeSelect:
		writeLabel(&b, field)
		writeSelect(&b, field, opts, errText)
	case schema.FieldTypeMultiSelect:
		writeGroupLabel(&b, field)
		writeCheckboxGroup(&b, field, opts)
	case schema.FieldTypeSwitch:
		writeSwitch(&b, field, opts)
	}

	if errText != "" {
		b.WriteString(`<p class="field-error">`)
		b.WriteString(html.EscapeString(errText))
		b.WriteString(`</p>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func writeLabel(b *strings.Builder, field schema.Field) {
	b.WriteString(`<label class="form-label" for="`)
	b.WriteString(controlID(field.Label))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`</label>`)
}

func writeGroupLabel(b *strings.Builder, field schema.Field) {
	b.WriteString(`<span class="form-label">`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`</span>`)
}

func writeInput(b *strings.Builder, field schema.Field, opts render.Options, errText string) {
	b.WriteString(`<input class="`)
	b.WriteString(inputClass(errText))
	b.WriteString(`" type="`)
	b.WriteString(string(field.Type))
	b.WriteString(`" id="`)
	b.WriteString(controlID(field.Label))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`"`)
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(field.Placeholder))
		b.WriteString(`"`)
	}
	if value := displayString(opts, field); value != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
}

func writeTextarea(b *strings.Builder, field schema.Field, opts render.Options, errText string) {
	b.WriteString(`<textarea class="`)
	b.WriteString(inputClass(errText))
	b.WriteString(` form-textarea" id="`)
	b.WriteString(controlID(field.Label))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`"`)
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(field.Placeholder))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(displayString(opts, field)))
	b.WriteString(`</textarea>`)
}

func writeSelect(b *strings.Builder, field schema.Field, opts render.Options, errText string) {
	current := displayString(opts, field)

	b.WriteString(`<select class="`)
	b.WriteString(inputClass(errText))
	b.WriteString(`" id="`)
	b.WriteString(controlID(field.Label))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`">`)

	// Leading empty choice so "nothing selected" is expressible.
	b.WriteString(`<option value="">`)
	if field.Placeholder != "" {
		b.WriteString(html.EscapeString(field.Placeholder))
	} else {
		b.WriteString("Select…")
	}
	b.WriteString(`</option>`)

	for _, opt := range field.Options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(opt))
		b.WriteString(`"`)
		if opt == current {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(opt))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
}

// writeCheckboxGroup renders one independent toggle per option; repeated
// name attributes make the selected set arrive as a string sequence.
func writeCheckboxGroup(b *strings.Builder, field schema.Field, opts render.Options) {
	selected := displayStrings(opts, field)
	for _, opt := range field.Options {
		b.WriteString(`<label class="checkbox-row"><input type="checkbox" name="`)
		b.WriteString(html.EscapeString(field.Label))
		b.WriteString(`" value="`)
		b.WriteString(html.EscapeString(opt))
		b.WriteString(`"`)
		if contains(selected, opt) {
			b.WriteString(` checked`)
		}
		b.WriteString(`> `)
		b.WriteString(html.EscapeString(opt))
		b.WriteString(`</label>`)
	}
}

func writeSwitch(b *strings.Builder, field schema.Field, opts render.Options) {
	on := false
	if raw, ok := opts.ValueFor(field.Label); ok {
		if v, isBool := raw.(bool); isBool {
			on = v
		}
	}
	b.WriteString(`<label class="checkbox-row"><input type="checkbox" id="`)
	b.WriteString(controlID(field.Label))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`"`)
	if on {
		b.WriteString(` checked`)
	}
	b.WriteString(`> `)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`</label>`)
}

func inputClass(errText string) string {
	if errText != "" {
		return "form-input form-input-error"
	}
	return "form-input"
}

// controlID derives a stable element id from a field label.
func controlID(label string) string {
	slug := strings.ToLower(label)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	return "field-" + slug
}

// displayString turns an in-progress value back into input text: strings as
// they are, numbers without a trailing ".0" for whole values.
func displayString(opts render.Options, field schema.Field) string {
	raw, ok := opts.ValueFor(field.Label)
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%g", v), ".0")
	case int:
		return fmt.Sprintf("%d", v)
	}
	return ""
}

func displayStrings(opts render.Options, field schema.Field) []string {
	raw, ok := opts.ValueFor(field.Label)
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, isString := item.(string); isString {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
