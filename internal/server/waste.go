package server

import (
	"net/http"

	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) AddWaste(c *gin.Context) {
	var req wastedomain.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	entry, err := s.wasteSvc.AddEntry(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (s *Server) RemoveWaste(c *gin.Context) {
	if err := s.wasteSvc.RemoveEntry(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListWaste(c *gin.Context) {
	entries, err := s.wasteSvc.EntriesFor(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) WasteSummary(c *gin.Context) {
	deviceID := c.Param("id")
	date := c.Query("date")

	total, err := s.wasteSvc.SummaryFor(c.Request.Context(), deviceID, date)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id": deviceID,
		"date":      date,
		"total":     total,
	})
}
