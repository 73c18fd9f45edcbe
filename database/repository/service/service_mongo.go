// File: database/repository/service/service_mongo.go
package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAll retrieves the full service catalog.
func (repo *mongoServiceRepo) GetAll(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("error fetching services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

// GetByName retrieves one service by its display name.
func (repo *mongoServiceRepo) GetByName(ctx context.Context, name string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := repo.coll.FindOne(ctx, bson.M{"name": name}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("error fetching service %q: %w", name, err)
	}
	return &svc, nil
}
