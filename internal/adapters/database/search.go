package database

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/drivelane/rental-backend/internal/domain/repositories"
	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

// searchSpec describes one entity's searchable surface; the pipeline
// itself (filter -> sort -> paginate) is built here once and shared by
// every adapter.
type searchSpec struct {
	table      string
	columns    []any
	filterCols []string          // ILIKE any-of targets
	sortable   map[string]string // sortable query field -> column
	defaultDir string            // direction when none is given; empty means asc
}

// datasets builds the page query and the matching count query. The filter
// is applied only when non-empty; an unknown sort field falls back to
// created_at descending, a known field without a valid direction sorts
// in the entity's default direction.
func (s searchSpec) datasets(db *goqu.Database, query repositories.SearchQuery) (page *goqu.SelectDataset, count *goqu.SelectDataset) {
	resolved := query.Normalize()

	base := db.From(s.table)
	if filter := strings.TrimSpace(query.Filter); filter != "" {
		pattern := "%" + filter + "%"
		ors := make([]goqu.Expression, 0, len(s.filterCols))
		for _, col := range s.filterCols {
			ors = append(ors, goqu.C(col).ILike(pattern))
		}
		base = base.Where(goqu.Or(ors...))
	}

	page = base.Select(s.columns...)
	if col, ok := s.sortable[query.Sort]; ok {
		dir := query.SortDir
		if !repositories.ValidSortDir(dir) {
			dir = s.defaultDir
		}
		if strings.EqualFold(dir, repositories.SortDesc) {
			page = page.Order(goqu.I(col).Desc())
		} else {
			page = page.Order(goqu.I(col).Asc())
		}
	} else {
		page = page.Order(goqu.I("created_at").Desc())
	}

	page = page.
		Limit(uint(resolved.PerPage)).
		Offset(uint((resolved.Page - 1) * resolved.PerPage))

	count = base.Select(goqu.COUNT(goqu.Star()))
	return page, count
}

// runSearch executes the two queries and assembles the result envelope.
// scan consumes one row of the page query.
func runSearch[T any](
	ctx context.Context,
	client queryer,
	spec searchSpec,
	db *goqu.Database,
	query repositories.SearchQuery,
	scan func(rows rowScanner) (T, error),
) (*repositories.SearchResult[T], error) {
	resolved := query.Normalize()
	pageDS, countDS := spec.datasets(db, query)

	countSQL, countArgs, err := countDS.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build count query", err)
	}
	var total int
	if err := client.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, apperrors.NewInternalError("failed to count "+spec.table, err)
	}

	pageSQL, pageArgs, err := pageDS.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}
	rows, err := client.QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search "+spec.table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan "+spec.table+" row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate "+spec.table+" rows", err)
	}

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
