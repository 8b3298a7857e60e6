// Package validation evaluates a schema's rule sets against a candidate
// submission. Validation failures are data, not errors: callers receive one
// human-readable message per violated field and decide how to surface them.
package validation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/formdeck/formdeck/pkg/schema"
)

const dateLayout = "2006-01-02"

// Validate checks values against the schema field by field and returns a
// message for every field that violates a rule, keyed by the field's label.
// An empty map means the submission is valid. Fields with no violations are
// never present in the result. Rules are independent per field; there are no
// cross-field constraints.
func Validate(s schema.Schema, values map[string]any) map[string]string {
	errs := make(map[string]string)
	for _, field := range s.Fields {
		if msg := validateField(field, values[field.Label]); msg != "" {
			errs[field.Label] = msg
		}
	}
	return errs
}

// validateField produces the first failing rule's message, or "" when the
// value satisfies every rule. Rule order per type: presence, value shape,
// then bounds.
func validateField(f schema.Field, raw any) string {
	switch f.Type {
	case schema.FieldTypeText, schema.FieldTypeTextarea:
		return validateText(f, raw)
	case schema.FieldTypeNumber:
		return validateNumber(f, raw)
	case schema.FieldTypeSelect:
		return validateSelect(f, raw)
	case schema.FieldTypeMultiSelect:
		return validateMultiSelect(f, raw)
	case schema.FieldTypeDate:
		return validateDate(f, raw)
	case schema.FieldTypeSwitch:
		return validateSwitch(f, raw)
	}
	return ""
}

func validateText(f schema.Field, raw any) string {
	rules := f.Validations
	if absentString(raw) {
		if rules.Required {
			return fmt.Sprintf("%s is required.", f.Label)
		}
		return ""
	}
	value, ok := stringValue(raw)
	if !ok {
		return fmt.Sprintf("%s must be text.", f.Label)
	}
	length := utf8.RuneCountInString(value)
	if rules.MinLength != nil && length < *rules.MinLength {
		return fmt.Sprintf("%s must be at least %d characters long.", f.Label, *rules.MinLength)
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		return fmt.Sprintf("%s must be at most %d characters long.", f.Label, *rules.MaxLength)
	}
	return ""
}

// validateNumber distinguishes "absent or not a number" from "present but out
// of range": a value of 0 is a real number and gets a range message, never a
// required one.
func validateNumber(f schema.Field, raw any) string {
	rules := f.Validations
	if raw == nil {
		if rules.Required {
			return fmt.Sprintf("%s is required and must be a number.", f.Label)
		}
		return ""
	}
	value, ok := numberValue(raw)
	if !ok {
		return fmt.Sprintf("%s must be a number.", f.Label)
	}
	switch {
	case rules.Min != nil && rules.Max != nil && (value < *rules.Min || value > *rules.Max):
		return fmt.Sprintf("%s must be between %s and %s.", f.Label, formatNumber(*rules.Min), formatNumber(*rules.Max))
	case rules.Min != nil && value < *rules.Min:
		return fmt.Sprintf("%s must be at least %s.", f.Label, formatNumber(*rules.Min))
	case rules.Max != nil && value > *rules.Max:
		return fmt.Sprintf("%s must be at most %s.", f.Label, formatNumber(*rules.Max))
	}
	return ""
}

func validateSelect(f schema.Field, raw any) string {
	rules := f.Validations
	if absentString(raw) {
		if rules.Required {
			return fmt.Sprintf("%s is required.", f.Label)
		}
		return ""
	}
	value, ok := stringValue(raw)
	if !ok {
		return fmt.Sprintf("%s must be one of the available options.", f.Label)
	}
	if len(f.Options) > 0 && !f.HasOption(value) {
		return fmt.Sprintf("%s must be one of the available options.", f.Label)
	}
	return ""
}

// validateMultiSelect treats an absent value as zero selections so that
// minSelected still applies.
func validateMultiSelect(f schema.Field, raw any) string {
	rules := f.Validations
	var selected []string
	if raw != nil {
		var ok bool
		selected, ok = stringSliceValue(raw)
		if !ok {
			return fmt.Sprintf("%s must be a list of selected options.", f.Label)
		}
	}
	if len(f.Options) > 0 {
		for _, value := range selected {
			if !f.HasOption(value) {
				return fmt.Sprintf("%s contains an option that is not available.", f.Label)
			}
		}
	}
	if rules.MinSelected != nil && len(selected) < *rules.MinSelected {
		return fmt.Sprintf("%s requires at least %d %s.", f.Label, *rules.MinSelected, plural(*rules.MinSelected, "selection"))
	}
	if rules.MaxSelected != nil && len(selected) > *rules.MaxSelected {
		return fmt.Sprintf("%s allows at most %d %s.", f.Label, *rules.MaxSelected, plural(*rules.MaxSelected, "selection"))
	}
	return ""
}

func validateDate(f schema.Field, raw any) string {
	rules := f.Validations
	if absentString(raw) {
		if rules.Required {
			return fmt.Sprintf("%s is required.", f.Label)
		}
		return ""
	}
	value, ok := stringValue(raw)
	if !ok {
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format.", f.Label)
	}
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format.", f.Label)
	}
	if rules.MinDate != "" {
		if bound, err := time.Parse(dateLayout, rules.MinDate); err == nil && day.Before(bound) {
			return fmt.Sprintf("%s must be on or after %s.", f.Label, rules.MinDate)
		}
	}
	return ""
}

func validateSwitch(f schema.Field, raw any) string {
	if raw == nil {
		if f.Validations.Required {
			return fmt.Sprintf("%s is required.", f.Label)
		}
		return ""
	}
	if _, ok := boolValue(raw); !ok {
		return fmt.Sprintf("%s must be true or false.", f.Label)
	}
	return ""
}

// absentString reports whether a string-shaped value counts as missing for
// required checks: nil, or a present string of length zero.
func absentString(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok && s == "" {
		return true
	}
	return false
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
