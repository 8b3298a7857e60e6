// Package store holds accepted submissions for the lifetime of the process.
// The collection is append-only: records are never mutated or deleted, and
// every stored submission has already passed validation against the schema
// the store was built with.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/formdeck/formdeck/pkg/schema"
	"github.com/formdeck/formdeck/pkg/validation"
)

// Submission is one accepted, validated set of form values.
type Submission struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Values    map[string]any `json:"submission"`
}

// Receipt is what a successful Submit returns to the caller.
type Receipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is safe for concurrent use; the mutex serialises appends against
// snapshot reads so no List can observe a half-applied ingestion.
type Store struct {
	schema schema.Schema

	mu   sync.Mutex
	subs []Submission
}

// New builds an empty store bound to the given schema. All submissions are
// validated against this schema for the store's lifetime.
func New(s schema.Schema) *Store {
	return &Store{schema: s}
}

// Schema returns the definition this store validates against.
func (st *Store) Schema() schema.Schema {
	return st.schema
}

// Submit validates values and, when every rule passes, appends a new record
// stamped with a fresh id and the current time. On validation failure the
// returned map carries one message per violated field and the store is left
// untouched. The map is nil on success.
func (st *Store) Submit(values map[string]any) (Receipt, map[string]string) {
	if errs := validation.Validate(st.schema, values); len(errs) > 0 {
		return Receipt{}, errs
	}

	// Keep only keys the schema declares, so stored records stay consistent
	// with the definition they were accepted under.
	kept := make(map[string]any, len(st.schema.Fields))
	for _, field := range st.schema.Fields {
		if v, ok := values[field.Label]; ok {
			kept[field.Label] = v
		}
	}

	sub := Submission{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Values:    kept,
	}

	st.mu.Lock()
	st.subs = append(st.subs, sub)
	st.mu.Unlock()

	return Receipt{ID: sub.ID, CreatedAt: sub.CreatedAt}, nil
}

// Len reports the number of stored submissions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.subs)
}

// snapshot copies the current records so sorting never reorders the
// canonical insertion-ordered slice.
func (st *Store) snapshot() []Submission {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]Submission, len(st.subs))
	copy(out, st.subs)
	return out
}
