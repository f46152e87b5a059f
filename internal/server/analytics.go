package server

import (
	"net/http"
	"strings"

	analyticsdomain "github.com/copystack/printledger/internal/analytics/domain"
	"github.com/copystack/printledger/internal/day"
	"github.com/gin-gonic/gin"
)

func (s *Server) Summary(c *gin.Context) {
	period, err := parsePeriod(c, "from", "to")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.analyticsSvc.Summarize(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (s *Server) Compare(c *gin.Context) {
	current, err := parsePeriod(c, "from", "to")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	baseline, err := parsePeriod(c, "baseline_from", "baseline_to")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cmp, err := s.analyticsSvc.Compare(c.Request.Context(), current, baseline)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cmp)
}

func (s *Server) CompareDay(c *gin.Context) {
	date, err := day.Parse(c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cmp, err := s.analyticsSvc.CompareDay(c.Request.Context(), date)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cmp)
}

func (s *Server) BreakEven(c *gin.Context) {
	period, err := parsePeriod(c, "from", "to")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.analyticsSvc.BreakEven(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// TimeSeries accepts ?dates=2024-01-10,2024-01-11 or month tokens like
// ?dates=2024-01,2024-02, one chart point per entry.
func (s *Server) TimeSeries(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("dates"))
	if raw == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var specs []analyticsdomain.DateSpec
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			specs = append(specs, analyticsdomain.DateSpec(part))
		}
	}

	points, err := s.analyticsSvc.TimeSeries(c.Request.Context(), specs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (s *Server) Shares(c *gin.Context) {
	period, err := parsePeriod(c, "from", "to")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	shares, err := s.analyticsSvc.ShareBreakdown(c.Request.Context(), period)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

func parsePeriod(c *gin.Context, fromKey, toKey string) (analyticsdomain.Period, error) {
	from, err := day.Parse(c.Query(fromKey))
	if err != nil {
		return analyticsdomain.Period{}, err
	}
	to, err := day.Parse(c.Query(toKey))
	if err != nil {
		return analyticsdomain.Period{}, err
	}
	if err := day.ValidateRange(from, to); err != nil {
		return analyticsdomain.Period{}, err
	}
	return analyticsdomain.Period{
		From:              from,
		To:                to,
		IncludeFixedCosts: boolQuery(c, "include_fixed_costs"),
	}, nil
}
