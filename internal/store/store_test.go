package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formdeck/formdeck/pkg/schema"
)

func validValues() map[string]any {
	return map[string]any{
		"Full Name":    "Alice Smith",
		"Age":          float64(30),
		"Department":   "HR",
		"Skills":       []any{"React"},
		"Joining Date": "2024-02-01",
		"Full Time":    true,
	}
}

func TestSubmit_Accepts(t *testing.T) {
	st := New(schema.EmployeeOnboarding())

	receipt, errs := st.Submit(validValues())
	require.Nil(t, errs)
	assert.NotEmpty(t, receipt.ID)
	assert.False(t, receipt.CreatedAt.IsZero())
	assert.Equal(t, 1, st.Len())
}

func TestSubmit_RejectsWithoutMutation(t *testing.T) {
	st := New(schema.EmployeeOnboarding())

	values := validValues()
	values["Full Name"] = "Al"

	receipt, errs := st.Submit(values)
	require.NotNil(t, errs)
	assert.Empty(t, receipt.ID)
	assert.Equal(t, 0, st.Len(), "rejected submission must not grow the store")
	assert.Contains(t, errs, "Full Name")
	assert.Len(t, errs, 1)
}

func TestSubmit_IDsAreUnique(t *testing.T) {
	st := New(schema.EmployeeOnboarding())

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		receipt, errs := st.Submit(validValues())
		require.Nil(t, errs)
		_, dup := seen[receipt.ID]
		require.False(t, dup, "duplicate id %s", receipt.ID)
		seen[receipt.ID] = struct{}{}
	}
	assert.Equal(t, 100, st.Len())
}

func TestSubmit_DropsUnknownKeys(t *testing.T) {
	st := New(schema.EmployeeOnboarding())

	values := validValues()
	values["Shoe Size"] = 44

	_, errs := st.Submit(values)
	require.Nil(t, errs)

	page := st.List(Query{})
	require.Len(t, page.Items, 1)
	assert.NotContains(t, page.Items[0].Values, "Shoe Size")
	assert.Contains(t, page.Items[0].Values, "Full Name")
}

func TestSubmit_ConcurrentAppends(t *testing.T) {
	st := New(schema.EmployeeOnboarding())

	const workers = 8
	const perWorker = 25
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < perWorker; j++ {
				st.Submit(validValues())
			}
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}
	assert.Equal(t, workers*perWorker, st.Len())
}
