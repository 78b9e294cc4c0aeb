package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	domainerrors "quickbite.backend/internal/domain/errors"
)

// pathID parses the :id path segment as a positive integer
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domainerrors.Validation("Invalid id")
	}
	return id, nil
}

// queryInt parses an integer query value, returning 0 when absent or bad
// so the usecase clamps apply.
func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
