package handlers

import (
	"net/http"

	resourceRepo "clipbook/database/repository/resource"
	"clipbook/models"
	"clipbook/services/calendar"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResourceHandler serves staff management. Creating a resource provisions its
// calendar (seeded from the existing schedule pattern); deleting it removes
// the calendar document along with it.
type ResourceHandler struct {
	Repo        resourceRepo.ResourceRepository
	CalendarSvc calendar.CalendarService
	Logger      *zap.Logger
}

// NewResourceHandler constructs a ResourceHandler.
func NewResourceHandler(repo resourceRepo.ResourceRepository, svc calendar.CalendarService, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{Repo: repo, CalendarSvc: svc, Logger: logger}
}

// ListResources handles GET /api/resources.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("ListResources failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storeUnavailable", "message": "failed to fetch resources"})
		return
	}
	c.JSON(http.StatusOK, resources)
}

// CreateResource handles POST /api/admin/resources.
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	res := &models.Resource{
		ID:     uuid.New().String(),
		Name:   body.Name,
		Role:   body.Role,
		Active: true,
	}
	if err := h.Repo.Create(c.Request.Context(), res); err != nil {
		h.Logger.Error("CreateResource failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storeUnavailable", "message": "failed to create resource"})
		return
	}

	if err := h.CalendarSvc.ProvisionResourceCalendar(c.Request.Context(), res.ID); err != nil {
		// The resource exists without a calendar; roll it back so the admin
		// can retry the whole creation.
		h.Logger.Error("calendar provisioning failed, rolling back resource",
			zap.String("resourceID", res.ID), zap.Error(err))
		if delErr := h.Repo.Delete(c.Request.Context(), res.ID); delErr != nil {
			h.Logger.Error("rollback failed, resource left without calendar",
				zap.String("resourceID", res.ID), zap.Error(delErr))
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// DeleteResource handles DELETE /api/admin/resources/:id.
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id := c.Param("id")

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		h.Logger.Error("DeleteResource failed", zap.String("resourceID", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "resourceNotFound", "message": "resource not found"})
		return
	}
	if err := h.CalendarSvc.RemoveResourceCalendar(c.Request.Context(), id); err != nil {
		// The resource is gone either way; an orphan calendar only wastes a
		// document, so report success but leave a trace in the logs.
		h.Logger.Error("calendar removal failed", zap.String("resourceID", id), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
