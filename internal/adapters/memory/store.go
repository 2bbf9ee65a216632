// Package memory provides the in-process repository backend. The
// filter -> sort -> paginate search pipeline is implemented once here;
// each entity repository supplies only its filter predicate and sort
// comparators.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

// Config parameterizes a Store for one entity type.
type Config[T repositories.Identifiable] struct {
	// Name is the entity label used in error messages, e.g. "vehicle"
	Name string

	// Matches is the filter predicate: a case-insensitive substring match
	// against the entity's designated text fields. Never invoked when the
	// filter is empty; the pipeline short-circuits first.
	Matches func(item T, filter string) bool

	// Comparators maps each sortable field to its natural-order comparator
	// (negative when a < b). Fields absent here are ignored by the sort step.
	Comparators map[string]func(a, b T) int

	// DefaultDir is the direction applied when the caller picks a sortable
	// field but no valid direction; empty means ascending
	DefaultDir string

	// Touch returns the entity with its updated_at refreshed
	Touch func(item T, now time.Time) T
}

// Store is a thread-safe in-process entity collection implementing the
// persistence half of the repository contract.
type Store[T repositories.Identifiable] struct {
	cfg   Config[T]
	mu    sync.RWMutex
	items []T
}

// NewStore creates an empty store
func NewStore[T repositories.Identifiable](cfg Config[T]) *Store[T] {
	return &Store[T]{cfg: cfg}
}

// Insert persists the entity and makes it visible to FindByID and Search
func (s *Store[T]) Insert(ctx context.Context, entity T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, entity)
	return &entity, nil
}

// FindByID retrieves an entity by id
func (s *Store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.GetID() == id {
			found := item
			return &found, nil
		}
	}
	return nil, s.notFound(id)
}

// Update overwrites all fields of the stored entity, refreshes its
// updated_at and returns the stored value
func (s *Store[T]) Update(ctx context.Context, entity T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.GetID() == entity.GetID() {
			updated := s.cfg.Touch(entity, time.Now())
			s.items[i] = updated
			return &updated, nil
		}
	}
	return nil, s.notFound(entity.GetID())
}

// Delete removes the entity permanently
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.GetID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return s.notFound(id)
}

// All returns a snapshot of the collection in insertion order
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]T, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// Len returns the collection size
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Search composes filter, sort and paginate over the full collection.
// The result echoes the caller's literal sort/sort_dir/filter and the
// resolved page/per_page; Total counts matches before pagination.
func (s *Store[T]) Search(ctx context.Context, query repositories.SearchQuery) (*repositories.SearchResult[T], error) {
	resolved := query.Normalize()

	items := s.All()
	if strings.TrimSpace(query.Filter) != "" {
		items = s.applyFilter(items, query.Filter)
	}
	items = s.applySort(items, query.Sort, query.SortDir)

	total := len(items)
	items = paginate(items, resolved.Page, resolved.PerPage)

	return &repositories.SearchResult[T]{
		Items:       items,
		Total:       total,
		CurrentPage: resolved.Page,
		PerPage:     resolved.PerPage,
		Sort:        query.Sort,
		SortDir:     query.SortDir,
		Filter:      query.Filter,
	}, nil
}

// applyFilter keeps the entities matching the filter, preserving input order
func (s *Store[T]) applyFilter(items []T, filter string) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if s.cfg.Matches(item, filter) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// applySort sorts by the requested field when it is sortable, falling back
// to created_at descending otherwise. A valid field without a valid
// direction sorts in the entity's default direction, ascending unless
// configured otherwise. The sort is stable: equal keys keep their relative
// input order.
func (s *Store[T]) applySort(items []T, sortField, sortDir string) []T {
	cmp, ok := s.cfg.Comparators[sortField]
	if !ok {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].GetCreatedAt().After(items[j].GetCreatedAt())
		})
		return items
	}

	if !repositories.ValidSortDir(sortDir) {
		sortDir = s.cfg.DefaultDir
	}
	desc := strings.ToLower(sortDir) == repositories.SortDesc
	sort.SliceStable(items, func(i, j int) bool {
		c := cmp(items[i], items[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return items
}

// paginate returns the page-th slice of per_page items, clipped to the
// sequence bounds; out-of-range pages yield an empty slice
func paginate[T any](items []T, page, perPage int) []T {
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (s *Store[T]) notFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", s.cfg.Name, id))
}

// CompareCreatedAt is the comparator behind the created_at sortable field
func CompareCreatedAt[T repositories.Identifiable](a, b T) int {
	return a.GetCreatedAt().Compare(b.GetCreatedAt())
}
