// Package client is the Go API client for the form service: fetch the
// schema, submit values, and page through stored submissions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/formdeck/formdeck/pkg/schema"
)

// ErrStale marks a List response that finished after a newer List call
// started. Callers driving a UI drop these instead of rendering them.
var ErrStale = errors.New("client: stale response discarded")

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client talks to one form service instance.
type Client struct {
	baseURL string
	http    *http.Client
	listSeq atomic.Uint64
}

// New builds a client for the service at baseURL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Schema fetches the form definition.
func (c *Client) Schema(ctx context.Context) (schema.Schema, error) {
	var s schema.Schema

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/form-schema", nil)
	if err != nil {
		return s, fmt.Errorf("client: build schema request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return s, fmt.Errorf("client: fetch schema: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return s, fmt.Errorf("client: fetch schema: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return s, fmt.Errorf("client: decode schema: %w", err)
	}
	return s, nil
}

// Receipt identifies an accepted submission.
type Receipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submit posts a value map. A validation rejection comes back as the errors
// map with a nil error; the error return covers transport and server
// failures only.
func (c *Client) Submit(ctx context.Context, values map[string]any) (*Receipt, map[string]string, error) {
	body, err := json.Marshal(values)
	if err != nil {
		return nil, nil, fmt.Errorf("client: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submissions", bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("client: build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("client: submit: %w", err)
	}
	defer drain(resp.Body)

	var payload struct {
		Success   bool              `json:"success"`
		ID        string            `json:"id"`
		CreatedAt time.Time         `json:"createdAt"`
		Errors    map[string]string `json:"errors"`
		Message   string            `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("client: decode submit response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		return &Receipt{ID: payload.ID, CreatedAt: payload.CreatedAt}, nil, nil
	case http.StatusBadRequest:
		if len(payload.Errors) > 0 {
			return nil, payload.Errors, nil
		}
		return nil, nil, fmt.Errorf("client: submit rejected: %s", payload.Message)
	default:
		return nil, nil, fmt.Errorf("client: submit: unexpected status %d", resp.StatusCode)
	}
}

// ListQuery selects a page of submissions. Zero values defer to the server's
// defaults.
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Submission is one stored entry as the service returns it.
type Submission struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Values    map[string]any `json:"submission"`
}

// SubmissionsPage is one page of results plus paging metadata.
type SubmissionsPage struct {
	Items      []Submission `json:"paginatedData"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalCount int          `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
}

// List fetches one page of submissions. When several List calls overlap,
// only the newest one's result survives; earlier calls return ErrStale no
// matter when their responses arrive.
func (c *Client) List(ctx context.Context, q ListQuery) (*SubmissionsPage, error) {
	token := c.listSeq.Add(1)

	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		params.Set("sortOrder", q.SortOrder)
	}

	endpoint := c.baseURL + "/api/submissions"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build list request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: list: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("client: list: unexpected status %d", resp.StatusCode)
	}

	var page SubmissionsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("client: decode list response: %w", err)
	}

	if c.listSeq.Load() != token {
		return nil, ErrStale
	}
	return &page, nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
