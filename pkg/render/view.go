package render

import (
	"time"

	"github.com/formdeck/formdeck/pkg/schema"
)

// SubmissionsView is the data a submissions-browser view consumes. The
// server assembles it from the store's page result; renderers only format.
type SubmissionsView struct {
	Rows       []SubmissionRow
	Page       int
	Limit      int
	TotalCount int
	TotalPages int
	SortOrder  string
	Notice     string
}

// SubmissionRow is one stored submission prepared for display.
type SubmissionRow struct {
	ID        string
	CreatedAt time.Time
	// Values holds the stored field values in schema declaration order,
	// fields absent from the submission omitted.
	Values []FieldValue
}

// FieldValue pairs a stored value with the field type that governs its
// display shape (string, float64, []string, bool).
type FieldValue struct {
	Label string
	Type  schema.FieldType
	Value any
}

// HasPrev reports whether a previous page exists.
func (v SubmissionsView) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether a next page exists.
func (v SubmissionsView) HasNext() bool { return v.Page < v.TotalPages }
