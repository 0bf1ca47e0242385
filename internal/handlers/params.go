package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/librisapp/library-backend/internal/pkg/pagination"
)

func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads the listing knobs from the query string; anything
// malformed falls back to the defaults rather than failing the request.
func pageParams(c *gin.Context, defaultSortBy string, defaultAscending bool) pagination.Params {
	page, err := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	if err != nil {
		page = pagination.DefaultPage
	}
	size, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		size = pagination.DefaultSize
	}
	ascending := defaultAscending
	if raw, ok := c.GetQuery("ascending"); ok {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			ascending = parsed
		}
	}
	return pagination.Params{
		Page:      page,
		Size:      size,
		SortBy:    c.DefaultQuery("sortBy", defaultSortBy),
		Ascending: ascending,
	}.Normalize()
}
