// File: database/repository/resource/resource_mongo.go
package resourceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetAll retrieves every resource.
func (repo *mongoResourceRepo) GetAll(ctx context.Context) ([]models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching resources: %w", err)
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, fmt.Errorf("error decoding resources: %w", err)
	}
	return resources, nil
}

// GetByID retrieves one resource by ID.
func (repo *mongoResourceRepo) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Resource
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("error fetching resource %s: %w", id, err)
	}
	return &res, nil
}

// Create inserts a new resource.
func (repo *mongoResourceRepo) Create(ctx context.Context, res *models.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("error creating resource %s: %w", res.ID, err)
	}
	return nil
}

// Delete removes a resource.
func (repo *mongoResourceRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting resource %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrResourceNotFound
	}
	return nil
}
