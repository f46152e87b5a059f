package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) RefreshAll(c *gin.Context) {
	results, err := s.collectorSvc.RefreshAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) RefreshDevice(c *gin.Context) {
	result, err := s.collectorSvc.RefreshDevice(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
