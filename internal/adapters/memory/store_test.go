package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/rental-backend/internal/adapters/memory"
	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

type note struct {
	ID        string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n note) GetID() string           { return n.ID }
func (n note) GetCreatedAt() time.Time { return n.CreatedAt }

// newNoteStore builds a store whose filter predicate counts its invocations
func newNoteStore(matchCalls *int) *memory.Store[note] {
	return memory.NewStore(memory.Config[note]{
		Name: "note",
		Matches: func(n note, filter string) bool {
			if matchCalls != nil {
				*matchCalls++
			}
			return strings.Contains(strings.ToLower(n.Text), strings.ToLower(filter))
		},
		Comparators: map[string]func(a, b note) int{
			"text": func(a, b note) int {
				return strings.Compare(a.Text, b.Text)
			},
			"created_at": memory.CompareCreatedAt[note],
		},
		Touch: func(n note, now time.Time) note {
			n.UpdatedAt = now
			return n
		},
	})
}

func seedNotes(t *testing.T, store *memory.Store[note], texts ...string) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range texts {
		_, err := store.Insert(context.Background(), note{
			ID:        text,
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
}

func TestStore_Search_Defaults(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "first", "second", "third")

	result, err := store.Search(context.Background(), repositories.SearchQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 15, result.PerPage)
	assert.Equal(t, 3, result.Total)
	assert.Empty(t, result.Sort)
	assert.Empty(t, result.Filter)

	// Newest first when no sort field is given
	require.Len(t, result.Items, 3)
	assert.Equal(t, "third", result.Items[0].Text)
	assert.Equal(t, "second", result.Items[1].Text)
	assert.Equal(t, "first", result.Items[2].Text)
}

func TestStore_Search_EmptyFilterSkipsPredicate(t *testing.T) {
	calls := 0
	store := newNoteStore(&calls)
	seedNotes(t, store, "alpha", "beta", "gamma")

	_, err := store.Search(context.Background(), repositories.SearchQuery{Filter: ""})
	require.NoError(t, err)
	assert.Zero(t, calls)

	_, err = store.Search(context.Background(), repositories.SearchQuery{Filter: "   "})
	require.NoError(t, err)
	assert.Zero(t, calls)

	_, err = store.Search(context.Background(), repositories.SearchQuery{Filter: "a"})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestStore_Search_FilterCaseInsensitiveSubstring(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "Ford Ka", "Fiat Uno", "Ford Fiesta")

	result, err := store.Search(context.Background(), repositories.SearchQuery{Filter: "fORd"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "fORd", result.Filter)
}

func TestStore_Search_Pagination(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "a", "b", "c", "d", "e")

	result, err := store.Search(context.Background(), repositories.SearchQuery{
		Page:    2,
		PerPage: 2,
		Sort:    "text",
		SortDir: "asc",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 2, result.CurrentPage)
	assert.Equal(t, 2, result.PerPage)
	assert.Equal(t, 3, result.LastPage())
	require.Len(t, result.Items, 2)
	assert.Equal(t, "c", result.Items[0].Text)
	assert.Equal(t, "d", result.Items[1].Text)
}

func TestStore_Search_OutOfRangePageIsEmpty(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "a", "b")

	result, err := store.Search(context.Background(), repositories.SearchQuery{Page: 99})
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 99, result.CurrentPage)
}

func TestStore_Search_PerPageBounds(t *testing.T) {
	store := newNoteStore(nil)
	for i := 0; i < 20; i++ {
		seedNotes(t, store, strings.Repeat("x", i+1))
	}

	result, err := store.Search(context.Background(), repositories.SearchQuery{PerPage: 100})
	require.NoError(t, err)
	assert.Equal(t, 15, result.PerPage)
	assert.Len(t, result.Items, 15)

	result, err = store.Search(context.Background(), repositories.SearchQuery{Page: -3, PerPage: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 15, result.PerPage)
}

func TestStore_Search_UnknownSortFallsBackToNewestFirst(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "a", "b", "c")

	result, err := store.Search(context.Background(), repositories.SearchQuery{
		Sort:    "bogus",
		SortDir: "asc",
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "c", result.Items[0].Text)
	// The caller's literal values come back untouched
	assert.Equal(t, "bogus", result.Sort)
	assert.Equal(t, "asc", result.SortDir)
}

func TestStore_Search_InvalidDirectionSortsAscending(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "b", "a", "c")

	result, err := store.Search(context.Background(), repositories.SearchQuery{
		Sort:    "text",
		SortDir: "sideways",
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "a", result.Items[0].Text)
	assert.Equal(t, "b", result.Items[1].Text)
	assert.Equal(t, "c", result.Items[2].Text)
	assert.Equal(t, "sideways", result.SortDir)
}

func TestStore_Search_DescendingIsCaseInsensitive(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "b", "a", "c")

	result, err := store.Search(context.Background(), repositories.SearchQuery{
		Sort:    "text",
		SortDir: "DESC",
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "c", result.Items[0].Text)
	assert.Equal(t, "a", result.Items[2].Text)
}

func TestStore_Search_StableSortKeepsInsertionOrder(t *testing.T) {
	store := newNoteStore(nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"n1", "n2", "n3"} {
		_, err := store.Insert(context.Background(), note{
			ID:        id,
			Text:      "same",
			CreatedAt: base,
		})
		require.NoError(t, err)
	}

	result, err := store.Search(context.Background(), repositories.SearchQuery{
		Sort:    "text",
		SortDir: "asc",
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "n1", result.Items[0].ID)
	assert.Equal(t, "n2", result.Items[1].ID)
	assert.Equal(t, "n3", result.Items[2].ID)
}

func TestStore_FindByID_NotFoundCarriesID(t *testing.T) {
	store := newNoteStore(nil)

	_, err := store.FindByID(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "note with id missing-id not found")
}

func TestStore_Update_RefreshesUpdatedAt(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "draft")

	updated, err := store.Update(context.Background(), note{ID: "draft", Text: "final"})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Text)
	assert.False(t, updated.UpdatedAt.IsZero())

	found, err := store.FindByID(context.Background(), "draft")
	require.NoError(t, err)
	assert.Equal(t, "final", found.Text)
}

func TestStore_Delete(t *testing.T) {
	store := newNoteStore(nil)
	seedNotes(t, store, "a", "b")

	require.NoError(t, store.Delete(context.Background(), "a"))
	assert.Equal(t, 1, store.Len())

	err := store.Delete(context.Background(), "a")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
