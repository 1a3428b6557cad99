package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// PageParams carries pagination, ordering and search parameters parsed from
// a list request.
type PageParams struct {
	Page     int
	Limit    int
	Ordering string
	Search   string
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageParams reads page, limit, ordering and search query parameters.
// Page defaults to 1, limit to 10 and is capped at 50.
func ParsePageParams(c *gin.Context) PageParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return PageParams{
		Page:     page,
		Limit:    limit,
		Ordering: c.Query("ordering"),
		Search:   c.Query("search"),
	}
}

// OrderClause resolves the requested ordering against the allowed field set,
// falling back to the given default. A leading '-' requests descending order.
func (p PageParams) OrderClause(allowed map[string]string, fallback string) string {
	field := p.Ordering
	desc := false
	if len(field) > 0 && field[0] == '-' {
		desc = true
		field = field[1:]
	}

	column, ok := allowed[field]
	if !ok {
		return fallback
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}
