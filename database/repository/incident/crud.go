package incidentRepo

import (
	"context"
	"errors"
	"time"

	"rescuehub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// matchWindow bounds how many recent records are scanned for an address match.
const matchWindow = 50

// UpsertSnapshot merges a triage snapshot into the latest record with a
// matching address, or inserts a new record. Every call appends the snapshot
// to the record history.
func (r *mongoIncidentRepo) UpsertSnapshot(ctx context.Context, snap models.IncidentSnapshot) (*models.IncidentRecord, error) {
	snap.Address = normalizeAddress(snap.Address)
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}
	if snap.IncidentType == "" {
		snap.IncidentType = models.IncidentUnknown
	}

	target, err := r.matchRecent(ctx, snap.Address)
	if err != nil {
		return nil, err
	}

	if target != nil {
		update := bson.M{
			"updatedAt": time.Now().UTC(),
		}
		if snap.Injuries != nil {
			update["injuries"] = *snap.Injuries
		}
		if snap.InjuryDescription != "" {
			update["injuryDesc"] = snap.InjuryDescription
		}
		if snap.IncidentType != models.IncidentUnknown {
			update["incidentType"] = snap.IncidentType
		}
		if snap.Dispatched {
			update["dispatched"] = true
		}
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"id": target.ID},
			bson.M{
				"$set":  update,
				"$push": bson.M{"history": snap},
			},
		)
		if err != nil {
			return nil, err
		}
		return r.GetByID(ctx, target.ID)
	}

	rec := models.IncidentRecord{
		ID:                uuid.New().String(),
		Address:           snap.Address,
		IncidentType:      snap.IncidentType,
		Injuries:          snap.Injuries,
		InjuryDescription: snap.InjuryDescription,
		Dispatched:        snap.Dispatched,
		History:           []models.IncidentSnapshot{snap},
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// matchRecent scans the most recent records for an address match, newest first.
func (r *mongoIncidentRepo) matchRecent(ctx context.Context, normalized string) (*models.IncidentRecord, error) {
	if normalized == "" {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.M{"updatedAt": -1}).SetLimit(matchWindow)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.IncidentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	for i := range records {
		if similarEnough(normalized, records[i].Address) {
			return &records[i], nil
		}
	}
	return nil, nil
}

// GetByID returns an incident record by its ID.
func (r *mongoIncidentRepo) GetByID(ctx context.Context, id string) (*models.IncidentRecord, error) {
	var record models.IncidentRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrIncidentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByAddress returns the latest record matching the given raw address.
func (r *mongoIncidentRepo) FindByAddress(ctx context.Context, rawAddress string) (*models.IncidentRecord, error) {
	rec, err := r.matchRecent(ctx, normalizeAddress(rawAddress))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrIncidentNotFound
	}
	return rec, nil
}

// ListRecent returns the most recently updated incident records.
func (r *mongoIncidentRepo) ListRecent(ctx context.Context, limit int64) ([]models.IncidentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.M{"updatedAt": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.IncidentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
