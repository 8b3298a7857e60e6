package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formdeck/formdeck/internal/server"
	"github.com/formdeck/formdeck/internal/store"
	"github.com/formdeck/formdeck/pkg/renderers/vanilla"
	"github.com/formdeck/formdeck/pkg/schema"
)

func newTestService(t *testing.T) *httptest.Server {
	t.Helper()
	html, err := vanilla.New()
	require.NoError(t, err)
	srv := server.New(store.New(schema.EmployeeOnboarding()), html)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func validValues() map[string]any {
	return map[string]any{
		"Full Name":    "Ada Lovelace",
		"Age":          28,
		"Department":   "Engineering",
		"Skills":       []string{"Python"},
		"Joining Date": "2024-06-01",
	}
}

func TestSchema(t *testing.T) {
	ts := newTestService(t)
	c := New(ts.URL)

	s, err := c.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Employee Onboarding Form", s.Title)
	assert.Len(t, s.Fields, 7)
}

func TestSubmitAccepted(t *testing.T) {
	ts := newTestService(t)
	c := New(ts.URL)

	receipt, errs, err := c.Submit(context.Background(), validValues())
	require.NoError(t, err)
	require.Nil(t, errs)
	require.NotNil(t, receipt)
	assert.NotEmpty(t, receipt.ID)
	assert.False(t, receipt.CreatedAt.IsZero())
}

func TestSubmitValidationErrors(t *testing.T) {
	ts := newTestService(t)
	c := New(ts.URL)

	values := validValues()
	values["Age"] = 17
	receipt, errs, err := c.Submit(context.Background(), values)
	require.NoError(t, err)
	assert.Nil(t, receipt)
	require.Len(t, errs, 1)
	assert.Contains(t, errs["Age"], "between 18 and 65")
}

func TestSubmitServerFailure(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Internal Server Error"}`))
	}))
	defer down.Close()
	c := New(down.URL)

	_, _, err := c.Submit(context.Background(), validValues())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestList(t *testing.T) {
	ts := newTestService(t)
	c := New(ts.URL)

	for i := 0; i < 3; i++ {
		_, _, err := c.Submit(context.Background(), validValues())
		require.NoError(t, err)
	}

	page, err := c.List(context.Background(), ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ada Lovelace", page.Items[0].Values["Full Name"])
}

func TestListDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paginatedData":[],"page":1,"limit":10,"totalCount":0,"totalPages":0}`))
	}))
	defer slow.Close()
	c := New(slow.URL)

	var wg sync.WaitGroup
	wg.Add(1)
	var staleErr error
	go func() {
		defer wg.Done()
		_, staleErr = c.List(context.Background(), ListQuery{Page: 1})
	}()

	// Give the first request time to reach the handler, then race past it.
	time.Sleep(50 * time.Millisecond)
	_, err := c.List(context.Background(), ListQuery{Page: 2})
	require.NoError(t, err)

	close(release)
	wg.Wait()
	if !errors.Is(staleErr, ErrStale) {
		t.Fatalf("stale err = %v, want ErrStale", staleErr)
	}
}
