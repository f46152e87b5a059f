package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type setRentRequest struct {
	Value string `json:"value"`
}

func (s *Server) GetMonthlyRent(c *gin.Context) {
	rent, err := s.settingsSvc.MonthlyRent(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly_rent": rent.String()})
}

func (s *Server) SetMonthlyRent(c *gin.Context) {
	var req setRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.settingsSvc.SetMonthlyRent(c.Request.Context(), req.Value); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly_rent": req.Value})
}
