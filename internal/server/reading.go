package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListReadings(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	readings, err := s.readingSvc.History(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings})
}

func (s *Server) ListDeltas(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	deltas, err := s.readingSvc.Deltas(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deltas": deltas})
}
