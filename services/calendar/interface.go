package calendar

import (
	"context"

	"clipbook/models"
)

// CalendarService is the orchestration surface over resource calendars:
// every mutation reads the whole document, transforms it through the slot
// engine, and writes the whole day array back under the document version.
type CalendarService interface {
	// Booking-facing operations.
	BookAppointment(ctx context.Context, resourceID, day, startHour, serviceName, clientID string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, resourceID, day, appointmentID string) error
	GetAvailability(ctx context.Context, resourceID, day, serviceName string) ([]string, error)
	GetClientAppointments(ctx context.Context, clientID string) ([]models.Appointment, error)

	// Admin-facing operations.
	GetCalendar(ctx context.Context, resourceID string) (*models.ResourceCalendar, error)
	GetDayEvents(ctx context.Context, resourceID, day string) ([]models.DayEvent, error)
	SetHourAvailability(ctx context.Context, resourceID, day, hour string, available bool) error
	SetDayOff(ctx context.Context, resourceID, day string, dayOff bool) error
	SetRecurringClosed(ctx context.Context, resourceID, day, hour string, closed bool) error

	// Provisioning and maintenance.
	ProvisionResourceCalendar(ctx context.Context, resourceID string) error
	RemoveResourceCalendar(ctx context.Context, resourceID string) error
	AdvanceAllWindows(ctx context.Context) (int, error)
}
