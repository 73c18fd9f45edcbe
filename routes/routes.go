package routes

import (
	"time"

	"clipbook/handlers"
	"clipbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Calendar *handlers.CalendarHandler
	Resource *handlers.ResourceHandler
	Services *handlers.ServicesHandler
}

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	// Public catalog endpoints.
	r.GET("/api/services", hb.Services.ListServices)
	r.GET("/api/resources", hb.Resource.ListResources)

	// Customer booking endpoints.
	booking := r.Group("/api/booking")
	{
		booking.POST("", hb.Booking.CreateBooking)
		booking.GET("/availability/:resourceID", hb.Booking.GetAvailability)
		booking.DELETE("/:resourceID/:appointmentID", hb.Booking.CancelBooking)
		booking.GET("/client/:clientID", hb.Booking.GetClientAppointments)
	}

	// Admin endpoints require a signed admin token.
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/calendar/:resourceID", hb.Calendar.GetCalendar)
		admin.GET("/calendar/:resourceID/events", hb.Calendar.GetDayEvents)
		admin.PUT("/calendar/:resourceID/hour", hb.Calendar.SetHourAvailability)
		admin.PUT("/calendar/:resourceID/day-off", hb.Calendar.SetDayOff)
		admin.PUT("/calendar/:resourceID/recurring", hb.Calendar.SetRecurringClosed)

		admin.POST("/resources", hb.Resource.CreateResource)
		admin.DELETE("/resources/:id", hb.Resource.DeleteResource)
	}
}
