package repositories

import (
	"context"
	"strings"
	"time"
)

// Sort directions accepted by Search. Matching is case-insensitive.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Pagination bounds for Search
const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 15
)

// Identifiable is the minimal shape every entity shares
type Identifiable interface {
	GetID() string
	GetCreatedAt() time.Time
}

// SearchQuery carries the caller's search parameters. Zero values mean
// "not supplied"; Normalize resolves page and per_page defaults.
type SearchQuery struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Sort    string `json:"sort"`
	SortDir string `json:"sort_dir"`
	Filter  string `json:"filter"`
}

// Normalize returns the query with page and per_page resolved: page
// defaults to 1, per_page defaults to 15 and is clamped to [1, 15].
// Sort, sort direction and filter are left exactly as the caller passed
// them; the pipeline resolves their fallbacks internally.
func (q SearchQuery) Normalize() SearchQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return q
}

// ValidSortDir reports whether dir is "asc" or "desc", ignoring case.
func ValidSortDir(dir string) bool {
	switch strings.ToLower(dir) {
	case SortAsc, SortDesc:
		return true
	}
	return false
}

// SearchResult is one page of entities matching a search. Sort, SortDir
// and Filter echo the caller's literal values, not the fallbacks the
// pipeline computed internally; PerPage and CurrentPage are the resolved
// values actually applied.
type SearchResult[T any] struct {
	Items       []T    `json:"items"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	Sort        string `json:"sort,omitempty"`
	SortDir     string `json:"sort_dir,omitempty"`
	Filter      string `json:"filter,omitempty"`
}

// LastPage derives the number of the last page from Total and PerPage
func (r SearchResult[T]) LastPage() int {
	if r.PerPage <= 0 {
		return 0
	}
	return (r.Total + r.PerPage - 1) / r.PerPage
}

// Repository is the uniform contract every entity repository satisfies,
// parameterized by entity type T and creation-input type C.
//
// Create constructs an entity in memory (fresh id, both timestamps set to
// now) without persisting it; Insert is the side-effecting step. Search
// composes filter, sort and paginate over the full candidate collection
// and never mutates.
type Repository[T Identifiable, C any] interface {
	Create(props C) T
	Insert(ctx context.Context, entity T) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, entity T) (*T, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query SearchQuery) (*SearchResult[T], error)
}
