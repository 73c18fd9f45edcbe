// File: database/repository/service/interface.go
package serviceRepo

import (
	"context"
	"errors"

	"clipbook/config"
	"clipbook/database"
	"clipbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrServiceNotFound is returned when no service matches the given name.
var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository is the read-side lookup the booking engine uses to
// resolve a service's slot duration.
type ServiceRepository interface {
	GetAll(ctx context.Context) ([]models.Service, error)
	GetByName(ctx context.Context, name string) (*models.Service, error)
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new MongoDB ServiceRepository.
func NewMongoServiceRepo() ServiceRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoServiceRepo{
		coll: db.Collection("services"),
	}
}
