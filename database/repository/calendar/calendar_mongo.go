// File: database/repository/calendar/calendar_mongo.go
package calendarRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAll retrieves every resource calendar document.
func (repo *mongoCalendarRepo) GetAll(ctx context.Context) ([]models.ResourceCalendar, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching calendars: %w", err)
	}
	defer cursor.Close(ctx)

	var calendars []models.ResourceCalendar
	if err := cursor.All(ctx, &calendars); err != nil {
		return nil, fmt.Errorf("error decoding calendars: %w", err)
	}
	return calendars, nil
}

// GetByResourceID retrieves one resource's calendar document.
func (repo *mongoCalendarRepo) GetByResourceID(ctx context.Context, resourceID string) (*models.ResourceCalendar, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cal models.ResourceCalendar
	filter := bson.M{"id": resourceID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&cal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCalendarNotFound
		}
		return nil, fmt.Errorf("error fetching calendar for resource %s: %w", resourceID, err)
	}
	return &cal, nil
}

// Create inserts a new calendar document for a resource.
func (repo *mongoCalendarRepo) Create(ctx context.Context, cal *models.ResourceCalendar) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, cal); err != nil {
		return fmt.Errorf("error creating calendar for resource %s: %w", cal.ID, err)
	}
	return nil
}

// Delete removes a resource's calendar document.
func (repo *mongoCalendarRepo) Delete(ctx context.Context, resourceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": resourceID})
	if err != nil {
		return fmt.Errorf("error deleting calendar for resource %s: %w", resourceID, err)
	}
	if res.DeletedCount == 0 {
		return ErrCalendarNotFound
	}
	return nil
}

// ReplaceDays overwrites the whole day array with a version check. The filter
// matches on the version the caller read; a lost race leaves MatchedCount at
// zero and surfaces as ErrVersionConflict so the caller can re-read and retry.
func (repo *mongoCalendarRepo) ReplaceDays(ctx context.Context, resourceID string, days []models.CalendarDay, expectedVersion int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": resourceID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"calendar": days},
		"$inc": bson.M{"version": 1},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error replacing calendar days for resource %s: %w", resourceID, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a stale version from a missing document.
		count, err := repo.coll.CountDocuments(ctx, bson.M{"id": resourceID})
		if err != nil {
			return fmt.Errorf("error checking calendar existence for resource %s: %w", resourceID, err)
		}
		if count == 0 {
			return ErrCalendarNotFound
		}
		return ErrVersionConflict
	}
	return nil
}
