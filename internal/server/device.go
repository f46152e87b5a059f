package server

import (
	"net/http"

	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateDevice(c *gin.Context) {
	var req devicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	dev, err := s.deviceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dev)
}

func (s *Server) ListDevices(c *gin.Context) {
	devices, err := s.deviceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

func (s *Server) GetDevice(c *gin.Context) {
	dev, err := s.deviceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dev)
}

func (s *Server) UpdateDevice(c *gin.Context) {
	var req devicedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	dev, err := s.deviceSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dev)
}

func (s *Server) DeleteDevice(c *gin.Context) {
	if err := s.deviceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
