package handlers

import (
	"net/http"

	"clipbook/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler serves the admin day-configuration endpoints.
type CalendarHandler struct {
	CalendarSvc calendar.CalendarService
	Logger      *zap.Logger
}

// NewCalendarHandler constructs a CalendarHandler.
func NewCalendarHandler(svc calendar.CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{CalendarSvc: svc, Logger: logger}
}

// GetCalendar handles GET /api/admin/calendar/:resourceID.
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	cal, err := h.CalendarSvc.GetCalendar(c.Request.Context(), c.Param("resourceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// GetDayEvents handles GET /api/admin/calendar/:resourceID/events?day=YYYY/MM/DD.
func (h *CalendarHandler) GetDayEvents(c *gin.Context) {
	day := c.Query("day")
	if day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": "day query parameter is required"})
		return
	}

	events, err := h.CalendarSvc.GetDayEvents(c.Request.Context(), c.Param("resourceID"), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// SetHourAvailability handles PUT /api/admin/calendar/:resourceID/hour.
func (h *CalendarHandler) SetHourAvailability(c *gin.Context) {
	var body struct {
		Day       string `json:"day" binding:"required"`
		Hour      string `json:"hour" binding:"required"`
		Available *bool  `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	err := h.CalendarSvc.SetHourAvailability(c.Request.Context(), c.Param("resourceID"), body.Day, body.Hour, *body.Available)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SetDayOff handles PUT /api/admin/calendar/:resourceID/day-off.
func (h *CalendarHandler) SetDayOff(c *gin.Context) {
	var body struct {
		Day    string `json:"day" binding:"required"`
		DayOff *bool  `json:"day_off" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	err := h.CalendarSvc.SetDayOff(c.Request.Context(), c.Param("resourceID"), body.Day, *body.DayOff)
	if err != nil {
		h.Logger.Warn("SetDayOff failed",
			zap.String("resourceID", c.Param("resourceID")),
			zap.String("day", body.Day),
			zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SetRecurringClosed handles PUT /api/admin/calendar/:resourceID/recurring.
func (h *CalendarHandler) SetRecurringClosed(c *gin.Context) {
	var body struct {
		Day    string `json:"day" binding:"required"`
		Hour   string `json:"hour" binding:"required"`
		Closed *bool  `json:"closed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	err := h.CalendarSvc.SetRecurringClosed(c.Request.Context(), c.Param("resourceID"), body.Day, body.Hour, *body.Closed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
