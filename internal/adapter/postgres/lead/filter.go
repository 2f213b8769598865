package lead

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/gigfrog/backend/internal/domain"
)

// ListFilter describes the lead listing query: visibility scope, free-text
// search, pagination and sorting. Zero ViewerID means anonymous (global-only
// visibility).
type ListFilter struct {
	ViewerID uuid.UUID
	Search   string
	Page     int
	Limit    int
	SortBy   string
	Order    string
}

// sortColumns maps API sort keys to table columns. Anything else falls back
// to created_at.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"datePosted": "date_posted",
	"title":      "title",
	"company":    "company",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// visibilityPred builds the predicate every lead query is scoped by:
// global leads, system-owned leads, and (for authenticated viewers) the
// viewer's own leads.
func visibilityPred(viewerID uuid.UUID) sq.Or {
	pred := sq.Or{
		sq.Eq{"is_global": true},
		sq.Eq{"created_by": domain.CreatorSystem},
	}
	if viewerID != uuid.Nil {
		pred = append(pred, sq.Eq{"created_by": viewerID.String()})
	}
	return pred
}

func (f ListFilter) where() sq.And {
	and := sq.And{visibilityPred(f.ViewerID)}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		and = append(and, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"company": pattern},
			sq.ILike{"location": pattern},
		})
	}
	return and
}

func (f ListFilter) orderBy() string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if f.Order == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

// selectQuery builds the paginated listing query.
func (f ListFilter) selectQuery() sq.SelectBuilder {
	offset := (f.Page - 1) * f.Limit
	if offset < 0 {
		offset = 0
	}
	return psql.Select(leadColumns...).
		From("leads").
		Where(f.where()).
		OrderBy(f.orderBy()).
		Limit(uint64(f.Limit)).
		Offset(uint64(offset))
}

// countQuery builds the matching total-count query (same predicate, no
// pagination).
func (f ListFilter) countQuery() sq.SelectBuilder {
	return psql.Select("count(*)").From("leads").Where(f.where())
}
