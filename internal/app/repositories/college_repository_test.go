package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comla/comla/internal/app/models/dto"
)

func feesPtr(v float64) *float64 { return &v }

func buildSearchSQL(t *testing.T, params dto.SearchParams) (string, []interface{}) {
	t.Helper()

	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("COUNT(*)").From("colleges")
	for _, p := range searchPredicates(params) {
		query = query.Where(p)
	}
	sql, args, err := query.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestSearchPredicatesEmptyParams(t *testing.T) {
	assert.Empty(t, searchPredicates(dto.SearchParams{}))
}

func TestSearchPredicatesFreeTextMatchesThreeColumns(t *testing.T) {
	sql, args := buildSearchSQL(t, dto.SearchParams{Query: "delhi"})

	assert.Contains(t, sql, "name ILIKE $1")
	assert.Contains(t, sql, "location ILIKE $2")
	assert.Contains(t, sql, "description ILIKE $3")
	assert.Contains(t, sql, " OR ")
	assert.Equal(t, []interface{}{"%delhi%", "%delhi%", "%delhi%"}, args)
}

func TestSearchPredicatesLocationFilter(t *testing.T) {
	sql, args := buildSearchSQL(t, dto.SearchParams{Location: "Mumbai"})

	assert.Contains(t, sql, "location ILIKE $1")
	assert.Equal(t, []interface{}{"%Mumbai%"}, args)
}

func TestSearchPredicatesCourseOverlap(t *testing.T) {
	courses := []string{"engineering", "medicine"}
	sql, args := buildSearchSQL(t, dto.SearchParams{Courses: courses})

	assert.Contains(t, sql, "courses && $1")
	require.Len(t, args, 1)
	assert.Equal(t, courses, args[0])
}

func TestSearchPredicatesFeesRange(t *testing.T) {
	sql, args := buildSearchSQL(t, dto.SearchParams{
		MinFees: feesPtr(50000),
		MaxFees: feesPtr(200000),
	})

	assert.Contains(t, sql, "fees >= $1")
	assert.Contains(t, sql, "fees <= $2")
	assert.Equal(t, []interface{}{float64(50000), float64(200000)}, args)
}

func TestSearchPredicatesCombineWithAnd(t *testing.T) {
	sql, args := buildSearchSQL(t, dto.SearchParams{
		Location: "Delhi",
		MinFees:  feesPtr(10000),
	})

	assert.Contains(t, sql, "location ILIKE $1 AND fees >= $2")
	assert.Len(t, args, 2)
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder, want string
	}{
		{"", "", "name ASC"},
		{"name", "asc", "name ASC"},
		{"fees", "desc", "fees DESC"},
		{"location", "desc", "location DESC"},
		{"ranking", "desc", "name DESC"},
		{"fees; DROP TABLE colleges", "asc", "name ASC"},
		{"fees", "DESC", "fees ASC"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, orderClause(tc.sortBy, tc.sortOrder), "sortBy=%q sortOrder=%q", tc.sortBy, tc.sortOrder)
	}
}
