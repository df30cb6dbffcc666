package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campushub/internal/pkg/apperrors"
)

// ParseLimit reads the "limit" query parameter. Missing or malformed values
// fall back to def; values above max are capped.
func ParseLimit(c *gin.Context, def, max int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ParseIDParam reads a positive numeric path parameter
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid " + name)
	}
	return id, nil
}
