package handlers

import (
	"net/http"

	"clipbook/services/calendar"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the customer-facing booking endpoints.
type BookingHandler struct {
	CalendarSvc calendar.CalendarService
	Logger      *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc calendar.CalendarService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{CalendarSvc: svc, Logger: logger}
}

// CreateBooking handles POST /api/booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var body struct {
		ResourceID string `json:"resource_id" binding:"required"`
		Day        string `json:"day" binding:"required"`
		Hour       string `json:"hour" binding:"required"`
		Service    string `json:"service" binding:"required"`
		ClientID   string `json:"client_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": err.Error()})
		return
	}

	appt, err := h.CalendarSvc.BookAppointment(c.Request.Context(), body.ResourceID, body.Day, body.Hour, body.Service, body.ClientID)
	if err != nil {
		h.Logger.Warn("CreateBooking failed",
			zap.String("resourceID", body.ResourceID),
			zap.String("day", body.Day),
			zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAvailability handles GET /api/booking/availability/:resourceID?day=YYYY/MM/DD&service=name.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	resourceID := c.Param("resourceID")
	day := c.Query("day")
	service := c.Query("service")
	if day == "" || service == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": "day and service query parameters are required"})
		return
	}

	starts, err := h.CalendarSvc.GetAvailability(c.Request.Context(), resourceID, day, service)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource_id": resourceID, "day": day, "available": starts})
}

// CancelBooking handles DELETE /api/booking/:resourceID/:appointmentID?day=YYYY/MM/DD.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	resourceID := c.Param("resourceID")
	appointmentID := c.Param("appointmentID")
	day := c.Query("day")
	if day == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "message": "day query parameter is required"})
		return
	}

	if err := h.CalendarSvc.CancelAppointment(c.Request.Context(), resourceID, day, appointmentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetClientAppointments handles GET /api/booking/client/:clientID.
func (h *BookingHandler) GetClientAppointments(c *gin.Context) {
	clientID := c.Param("clientID")

	appointments, err := h.CalendarSvc.GetClientAppointments(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}
