package server

import (
	"strings"

	"github.com/copystack/printledger/internal/day"
	"github.com/gin-gonic/gin"
)

// parseRange reads and validates the from/to query parameters.
func parseRange(c *gin.Context) (day.Date, day.Date, error) {
	from, err := day.Parse(c.Query("from"))
	if err != nil {
		return "", "", err
	}
	to, err := day.Parse(c.Query("to"))
	if err != nil {
		return "", "", err
	}
	if err := day.ValidateRange(from, to); err != nil {
		return "", "", err
	}
	return from, to, nil
}

func boolQuery(c *gin.Context, name string) bool {
	return strings.EqualFold(c.Query(name), "true")
}
