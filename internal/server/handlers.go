package server

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
)

// handleSchema serves the form definition for clients that render their own
// UI.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Schema())
}

// handleCreateSubmission accepts a JSON value map, validates it, and stores
// it on success.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := decodeJSON(r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, errs := s.store.Submit(values)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"errors":  errs,
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"id":        receipt.ID,
		"createdAt": receipt.CreatedAt,
	})
}

// handleListSubmissions serves one page of stored submissions.
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	page := s.store.ListWithDefaultLimit(parseListQuery(r), s.pageSize)
	writeJSON(w, http.StatusOK, page)
}

// handleFormPage renders the empty form.
func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, render.Options{Theme: s.theme})
}

// handleSubmitForm is the browser submission path: coerce the posted form
// into typed values, validate through the store, and either redirect to the
// submissions page or re-render the form with errors inline.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	values := formValues(s.store.Schema(), r.PostForm)
	_, errs := s.store.Submit(values)
	if len(errs) > 0 {
		s.renderForm(w, r, render.Options{
			Values: values,
			Errors: errs,
			Notice: "Please fix the errors above.",
			Theme:  s.theme,
		})
		return
	}

	http.Redirect(w, r, "/submissions?submitted=1", http.StatusSeeOther)
}

// handleSubmissionsPage renders the paginated browser view.
func (s *Server) handleSubmissionsPage(w http.ResponseWriter, r *http.Request) {
	page := s.store.ListWithDefaultLimit(parseListQuery(r), s.pageSize)

	sortOrder := strings.ToLower(r.URL.Query().Get("sortOrder"))
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	notice := ""
	if r.URL.Query().Get("submitted") == "1" {
		notice = "Submitted successfully!"
	}

	view := buildSubmissionsView(s.store.Schema(), page, sortOrder, notice)
	body, err := s.html.RenderSubmissions(r.Context(), view, render.Options{Theme: s.theme})
	if err != nil {
		s.log.Error("render submissions page failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", s.html.ContentType())
	_, _ = w.Write(body)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, opts render.Options) {
	body, err := s.html.Render(r.Context(), s.store.Schema(), opts)
	if err != nil {
		s.log.Error("render form page failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("Content-Type", s.html.ContentType())
	_, _ = w.Write(body)
}

// formValues converts url-encoded form input into the typed value map the
// validator expects. Empty optional inputs stay absent; a number that does
// not parse passes through as its raw text so validation reports it.
func formValues(s schema.Schema, form map[string][]string) map[string]any {
	values := make(map[string]any, len(s.Fields))
	for _, field := range s.Fields {
		switch field.Type {
		case schema.FieldTypeMultiSelect:
			if selected := form[field.Label]; len(selected) > 0 {
				values[field.Label] = selected
			}
		case schema.FieldTypeSwitch:
			_, on := form[field.Label]
			values[field.Label] = on
		case schema.FieldTypeNumber:
			raw := strings.TrimSpace(first(form[field.Label]))
			if raw == "" {
				continue
			}
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				values[field.Label] = n
			} else {
				values[field.Label] = raw
			}
		default:
			raw := strings.TrimSpace(first(form[field.Label]))
			if raw != "" {
				values[field.Label] = raw
			}
		}
	}
	return values
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
