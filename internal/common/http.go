package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads page/per_page query params, clamping bad values
func ParsePagination(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return NewPagination(page, perPage)
}

// ParseUintParam reads a numeric path parameter, returning ok=false on junk
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
