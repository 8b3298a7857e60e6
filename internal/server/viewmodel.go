package server

import (
	"github.com/formdeck/formdeck/internal/store"
	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
)

// buildSubmissionsView flattens a store page into the renderer's view model.
// Each row lists its values in schema field order, skipping fields the
// submission never carried.
func buildSubmissionsView(s schema.Schema, page store.Page, sortOrder, notice string) render.SubmissionsView {
	rows := make([]render.SubmissionRow, 0, len(page.Items))
	for _, sub := range page.Items {
		values := make([]render.FieldValue, 0, len(s.Fields))
		for _, field := range s.Fields {
			raw, ok := sub.Values[field.Label]
			if !ok {
				continue
			}
			values = append(values, render.FieldValue{
				Label: field.Label,
				Type:  field.Type,
				Value: raw,
			})
		}
		rows = append(rows, render.SubmissionRow{
			ID:        sub.ID,
			CreatedAt: sub.CreatedAt,
			Values:    values,
		})
	}

	return render.SubmissionsView{
		Rows:       rows,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		SortOrder:  sortOrder,
		Notice:     notice,
	}
}
