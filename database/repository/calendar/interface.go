// File: database/repository/calendar/interface.go
package calendarRepo

import (
	"context"
	"errors"

	"clipbook/config"
	"clipbook/database"
	"clipbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrCalendarNotFound is returned when no calendar document exists for a resource.
	ErrCalendarNotFound = errors.New("calendar not found")
	// ErrVersionConflict is returned when a replace loses the optimistic-concurrency
	// race: the document version moved since the caller read it.
	ErrVersionConflict = errors.New("calendar version conflict")
)

// CalendarRepository is the document-store adapter for resource calendars.
// Writes always replace the whole day array; the document is the unit of
// atomicity.
type CalendarRepository interface {
	GetAll(ctx context.Context) ([]models.ResourceCalendar, error)
	GetByResourceID(ctx context.Context, resourceID string) (*models.ResourceCalendar, error)
	Create(ctx context.Context, cal *models.ResourceCalendar) error
	Delete(ctx context.Context, resourceID string) error
	// ReplaceDays overwrites the full calendar array iff the stored version
	// still equals expectedVersion, then increments the version.
	ReplaceDays(ctx context.Context, resourceID string, days []models.CalendarDay, expectedVersion int64) error
}

type mongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo constructs a new MongoDB CalendarRepository.
func NewMongoCalendarRepo() CalendarRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoCalendarRepo{
		coll: db.Collection("calendars"),
	}
}
