package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/task-tracker-api/internal/constants"
)

// PageParams holds the skip/limit pagination parameters
type PageParams struct {
	Skip  int
	Limit int
}

// GetPageParams extracts and clamps pagination parameters from the request.
// The repository itself enforces no bound; the clamp lives here.
func GetPageParams(c *gin.Context) PageParams {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultLimit)))

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > constants.MaxLimit {
		limit = constants.DefaultLimit
	}

	return PageParams{
		Skip:  skip,
		Limit: limit,
	}
}
