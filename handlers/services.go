package handlers

import (
	"net/http"

	serviceRepo "clipbook/database/repository/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServicesHandler exposes the service catalog the booking UI reads.
type ServicesHandler struct {
	Repo   serviceRepo.ServiceRepository
	Logger *zap.Logger
}

// NewServicesHandler constructs a ServicesHandler.
func NewServicesHandler(repo serviceRepo.ServiceRepository, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{Repo: repo, Logger: logger}
}

// ListServices handles GET /api/services.
func (h *ServicesHandler) ListServices(c *gin.Context) {
	services, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListServices failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storeUnavailable", "message": "failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, services)
}
