package server

import (
	"net/http"

	manualdomain "github.com/copystack/printledger/internal/manualentry/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateManualEntry(c *gin.Context) {
	var req manualdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	entry, err := s.manualSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (s *Server) ListManualEntries(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entries, err := s.manualSvc.ListRange(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) DeleteManualEntry(c *gin.Context) {
	if err := s.manualSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
