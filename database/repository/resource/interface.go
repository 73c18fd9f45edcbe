// File: database/repository/resource/interface.go
package resourceRepo

import (
	"context"
	"errors"

	"clipbook/config"
	"clipbook/database"
	"clipbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrResourceNotFound is returned when no resource matches the given ID.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceRepository manages the bookable staff list.
type ResourceRepository interface {
	GetAll(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	Create(ctx context.Context, res *models.Resource) error
	Delete(ctx context.Context, id string) error
}

type mongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo constructs a new MongoDB ResourceRepository.
func NewMongoResourceRepo() ResourceRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoResourceRepo{
		coll: db.Collection("resources"),
	}
}
