package lead

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFilter_SelectQuery_Anonymous(t *testing.T) {
	t.Parallel()

	f := ListFilter{Page: 1, Limit: 10}

	sql, args, err := f.selectQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "is_global = $1")
	assert.Contains(t, sql, "created_by = $2")
	assert.NotContains(t, sql, "$3", "anonymous filter must not scope by viewer")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 0")
	assert.Equal(t, []any{true, "system"}, args)
}

func TestListFilter_SelectQuery_Authenticated(t *testing.T) {
	t.Parallel()

	viewer := uuid.New()
	f := ListFilter{ViewerID: viewer, Page: 3, Limit: 20}

	sql, args, err := f.selectQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "created_by = $3")
	assert.Contains(t, sql, "OFFSET 40")
	assert.Equal(t, []any{true, "system", viewer.String()}, args)
}

func TestListFilter_SelectQuery_Search(t *testing.T) {
	t.Parallel()

	f := ListFilter{Page: 1, Limit: 10, Search: "frog"}

	sql, args, err := f.selectQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "title ILIKE")
	assert.Contains(t, sql, "company ILIKE")
	assert.Contains(t, sql, "location ILIKE")
	assert.Contains(t, args, "%frog%")

	// the search OR must be ANDed with visibility, not ORed into it
	visEnd := strings.Index(sql, "ILIKE")
	require.Greater(t, visEnd, 0)
	assert.Contains(t, sql[:visEnd], "AND")
}

func TestListFilter_OrderBy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sortBy string
		order  string
		want   string
	}{
		{"", "", "created_at DESC"},
		{"createdAt", "asc", "created_at ASC"},
		{"datePosted", "desc", "date_posted DESC"},
		{"title", "asc", "title ASC"},
		{"company", "", "company DESC"},
		{"; DROP TABLE leads", "asc", "created_at ASC"},
	}

	for _, tt := range tests {
		f := ListFilter{SortBy: tt.sortBy, Order: tt.order}
		assert.Equal(t, tt.want, f.orderBy(), "sortBy=%q order=%q", tt.sortBy, tt.order)
	}
}

func TestListFilter_CountQuery(t *testing.T) {
	t.Parallel()

	f := ListFilter{Page: 5, Limit: 10, Search: "go"}

	sql, _, err := f.countQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "count(*)")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}
