package store

import (
	"sort"
	"strings"
)

const (
	// DefaultLimit is the page size used when the caller supplies none.
	DefaultLimit = 10

	SortByCreatedAt = "createdAt"
	SortAsc         = "asc"
	SortDesc        = "desc"
)

// Query carries pagination and sort parameters for List. Out-of-range or
// zero values are normalised rather than rejected, so a Query built straight
// from untrusted HTTP input is always safe to run.
type Query struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (q Query) normalized(defaultLimit int) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = SortByCreatedAt
	}
	switch strings.ToLower(q.SortOrder) {
	case SortAsc:
		q.SortOrder = SortAsc
	default:
		q.SortOrder = SortDesc
	}
	return q
}

// Page is one slice of the stored collection plus paging metadata.
type Page struct {
	Items      []Submission `json:"paginatedData"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalCount int          `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
}

// List returns the requested page of submissions. Sorting happens on the
// creation instant (not its string form) with ties kept in insertion order;
// a SortBy other than "createdAt" leaves the insertion order untouched.
// Requesting a page past the data yields an empty item list with accurate
// totals.
func (st *Store) List(q Query) Page {
	return st.ListWithDefaultLimit(q, DefaultLimit)
}

// ListWithDefaultLimit is List with a caller-chosen fallback page size.
func (st *Store) ListWithDefaultLimit(q Query, defaultLimit int) Page {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	q = q.normalized(defaultLimit)

	items := st.snapshot()

	if q.SortBy == SortByCreatedAt {
		asc := q.SortOrder == SortAsc
		sort.SliceStable(items, func(i, j int) bool {
			if asc {
				return items[i].CreatedAt.Before(items[j].CreatedAt)
			}
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}

	total := len(items)
	totalPages := (total + q.Limit - 1) / q.Limit

	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	// Empty pages serialise as [] rather than null: snapshot always returns
	// a non-nil slice and reslicing preserves that.
	page := items[start:end]

	return Page{
		Items:      page,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
