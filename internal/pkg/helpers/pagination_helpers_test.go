package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		offset     uint64
		limit      int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 10, 20, 10},
		{"zero page defaults to first", 0, 10, 0, 10},
		{"negative page defaults to first", -2, 10, 0, 10},
		{"zero size defaults", 2, 0, 10, 10},
		{"oversized limit clamped to default", 1, 500, 0, 10},
		{"custom size", 2, 25, 25, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.limit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(37, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 4, info.TotalPages)
	assert.Equal(t, int64(37), info.TotalColleges)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestNewPaginationInfoLastPage(t *testing.T) {
	info := NewPaginationInfo(37, 4, 10)
	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestNewPaginationInfoEmptySet(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 1, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)
}

func TestNewPaginationInfoPageBeyondEnd(t *testing.T) {
	info := NewPaginationInfo(15, 9, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
	assert.False(t, info.HasNext)
}

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/colleges/search?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	cases := []struct {
		name  string
		query string
		page  int
		size  int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"garbage page", "page=abc&limit=20", 1, 20},
		{"negative values", "page=-1&limit=-5", 1, 10},
		{"limit above cap", "page=2&limit=1000", 2, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size := ParsePaginationParams(paginationContext(t, tc.query))
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.size, size)
		})
	}
}
