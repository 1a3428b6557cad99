package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PageParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePageParams(c)
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "page=3&limit=25", 3, 25},
		{"limit capped at 50", "limit=500", 1, 50},
		{"zero page falls back", "page=0", 1, 10},
		{"negative limit falls back", "limit=-5", 1, 10},
		{"garbage falls back", "page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(t, tt.query)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestParsePageParams_SearchAndOrdering(t *testing.T) {
	p := paramsFor(t, "search=pump&ordering=-name")
	assert.Equal(t, "pump", p.Search)
	assert.Equal(t, "-name", p.Ordering)
}

func TestOffset(t *testing.T) {
	p := PageParams{Page: 3, Limit: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"name":       "name",
		"created_at": "created_at",
	}

	tests := []struct {
		name     string
		ordering string
		want     string
	}{
		{"ascending", "name", "name ASC"},
		{"descending", "-created_at", "created_at DESC"},
		{"unknown field falls back", "password_hash", "id DESC"},
		{"empty falls back", "", "id DESC"},
		{"bare dash falls back", "-", "id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PageParams{Ordering: tt.ordering}
			assert.Equal(t, tt.want, p.OrderClause(allowed, "id DESC"))
		})
	}
}
