package schema

// FieldType is the enum of input kinds understood by every renderer in this
// module. Values are wire-exact: they appear verbatim in the
// /api/form-schema payload.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi-select"
	FieldTypeDate        FieldType = "date"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeSwitch      FieldType = "switch"
)

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeSelect, FieldTypeMultiSelect,
		FieldTypeDate, FieldTypeTextarea, FieldTypeSwitch:
		return true
	}
	return false
}

// Choice reports whether the field type draws its value from Options.
func (t FieldType) Choice() bool {
	return t == FieldTypeSelect || t == FieldTypeMultiSelect
}

// Validations carries the rule set attached to a field. Pointer members
// distinguish "rule absent" from a zero-valued bound, so marshalled output
// lists only the rules a field actually declares. Which rules are meaningful
// depends on the field type; unrecognised combinations impose no constraint.
type Validations struct {
	Required    bool     `json:"required,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	MinSelected *int     `json:"minSelected,omitempty"`
	MaxSelected *int     `json:"maxSelected,omitempty"`
	MinDate     string   `json:"minDate,omitempty"`
}

// Empty reports whether the rule set imposes no constraint at all.
func (v Validations) Empty() bool {
	return !v.Required && v.MinLength == nil && v.MaxLength == nil &&
		v.Min == nil && v.Max == nil && v.MinSelected == nil &&
		v.MaxSelected == nil && v.MinDate == ""
}

// Field models one input of the form. Label doubles as the submission data
// key, so it must be unique within a schema.
type Field struct {
	Label       string      `json:"label"`
	Type        FieldType   `json:"type"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Validations Validations `json:"validations"`
}

// HasOption reports whether value is one of the field's declared options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// Schema is a complete form definition: what the server exposes and what
// every submission is validated against. Instances are treated as immutable
// once built.
type Schema struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

// FieldByLabel returns the field whose label matches, if any.
func (s Schema) FieldByLabel(label string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}

// Labels returns the field labels in declaration order.
func (s Schema) Labels() []string {
	labels := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		labels[i] = f.Label
	}
	return labels
}

func intRule(v int) *int { return &v }

func numRule(v float64) *float64 { return &v }
