package incidentRepo

import (
	"context"
	"errors"

	"rescuehub/database"
	"rescuehub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrIncidentNotFound is returned by lookups that match no record.
var ErrIncidentNotFound = errors.New("incident not found")

// IncidentRepository persists incident records keyed by normalized address.
// Snapshots coming out of the triage core are merged into the most recent
// record whose address matches; history is append-only.
type IncidentRepository interface {
	UpsertSnapshot(ctx context.Context, snap models.IncidentSnapshot) (*models.IncidentRecord, error)
	GetByID(ctx context.Context, id string) (*models.IncidentRecord, error)
	FindByAddress(ctx context.Context, rawAddress string) (*models.IncidentRecord, error)
	ListRecent(ctx context.Context, limit int64) ([]models.IncidentRecord, error)
}

type mongoIncidentRepo struct {
	coll *mongo.Collection
}

// NewMongoIncidentRepo returns a new IncidentRepository instance using MongoDB.
func NewMongoIncidentRepo() IncidentRepository {
	db := database.MongoClient.Database("rescuehub")
	return &mongoIncidentRepo{
		coll: db.Collection("incidents"),
	}
}
