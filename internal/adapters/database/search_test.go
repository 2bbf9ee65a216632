package database

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivelane/rental-backend/internal/domain/repositories"
)

func buildSQL(t *testing.T, spec searchSpec, query repositories.SearchQuery) (pageSQL, countSQL string) {
	t.Helper()
	db := goqu.New("postgres", nil)
	page, count := spec.datasets(db, query)

	pageSQL, _, err := page.ToSQL()
	require.NoError(t, err)
	countSQL, _, err = count.ToSQL()
	require.NoError(t, err)
	return pageSQL, countSQL
}

func TestSearchSpec_DefaultsToNewestFirst(t *testing.T) {
	pageSQL, countSQL := buildSQL(t, vehicleSearchSpec, repositories.SearchQuery{})

	assert.Contains(t, pageSQL, `ORDER BY "created_at" DESC`)
	assert.Contains(t, pageSQL, "LIMIT 15")
	assert.Contains(t, pageSQL, "OFFSET 0")
	assert.NotContains(t, pageSQL, "ILIKE")
	assert.NotContains(t, countSQL, "ILIKE")
	assert.Contains(t, countSQL, "COUNT(*)")
}

func TestSearchSpec_FilterAppliesILikeToAllColumns(t *testing.T) {
	pageSQL, countSQL := buildSQL(t, userSearchSpec, repositories.SearchQuery{Filter: "paulo"})

	assert.Contains(t, pageSQL, `"name" ILIKE '%paulo%'`)
	assert.Contains(t, pageSQL, `"email" ILIKE '%paulo%'`)
	// The count query sees the same predicate so Total matches the page
	assert.Contains(t, countSQL, `"name" ILIKE '%paulo%'`)
	assert.Contains(t, countSQL, `"email" ILIKE '%paulo%'`)
}

func TestSearchSpec_BlankFilterIsIgnored(t *testing.T) {
	pageSQL, _ := buildSQL(t, vehicleSearchSpec, repositories.SearchQuery{Filter: "   "})
	assert.NotContains(t, pageSQL, "ILIKE")
}

func TestSearchSpec_SortDirections(t *testing.T) {
	pageSQL, _ := buildSQL(t, vehicleSearchSpec, repositories.SearchQuery{
		Sort: "name", SortDir: "DESC",
	})
	assert.Contains(t, pageSQL, `ORDER BY "name" DESC`)

	// A known field without a valid direction sorts ascending
	pageSQL, _ = buildSQL(t, userSearchSpec, repositories.SearchQuery{
		Sort: "name", SortDir: "sideways",
	})
	assert.Contains(t, pageSQL, `ORDER BY "name" ASC`)

	// An unknown field falls back to newest first
	pageSQL, _ = buildSQL(t, vehicleSearchSpec, repositories.SearchQuery{
		Sort: "bogus", SortDir: "asc",
	})
	assert.Contains(t, pageSQL, `ORDER BY "created_at" DESC`)
}

func TestSearchSpec_VehiclesDefaultDirectionIsDescending(t *testing.T) {
	pageSQL, _ := buildSQL(t, vehicleSearchSpec, repositories.SearchQuery{Sort: "name"})
	assert.Contains(t, pageSQL, `ORDER BY "name" DESC`)

	pageSQL, _ = buildSQL(t, vehicleSearchSpec, repositories.SearchQuery{
		Sort: "name", SortDir: "sideways",
	})
	assert.Contains(t, pageSQL, `ORDER BY "name" DESC`)

	// An explicit direction still wins
	pageSQL, _ = buildSQL(t, vehicleSearchSpec, repositories.SearchQuery{
		Sort: "name", SortDir: "asc",
	})
	assert.Contains(t, pageSQL, `ORDER BY "name" ASC`)
}

func TestSearchSpec_PaginationBounds(t *testing.T) {
	pageSQL, _ := buildSQL(t, reserveSearchSpec, repositories.SearchQuery{
		Page: 3, PerPage: 5,
	})
	assert.Contains(t, pageSQL, "LIMIT 5")
	assert.Contains(t, pageSQL, "OFFSET 10")

	// per_page is clamped and page defaults to 1
	pageSQL, _ = buildSQL(t, reserveSearchSpec, repositories.SearchQuery{
		Page: -1, PerPage: 500,
	})
	assert.Contains(t, pageSQL, "LIMIT 15")
	assert.Contains(t, pageSQL, "OFFSET 0")
}

func TestSearchSpec_CountQueryHasNoOrderingOrPaging(t *testing.T) {
	_, countSQL := buildSQL(t, reserveSearchSpec, repositories.SearchQuery{
		Page: 2, PerPage: 5, Sort: "start_date", SortDir: "desc",
	})
	assert.NotContains(t, countSQL, "ORDER BY")
	assert.NotContains(t, countSQL, "LIMIT")
	assert.NotContains(t, countSQL, "OFFSET")
}
