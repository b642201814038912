// File: models/incident.go
package models

import "time"

// IncidentSnapshot is the per-turn projection of a triage context that seeds
// or updates a persisted incident record. Persistence happens outside the
// orchestration core; the core only populates these fields.
type IncidentSnapshot struct {
	SessionID         string       `bson:"sessionId" json:"sessionId"`
	Address           string       `bson:"address" json:"address"`
	IncidentType      IncidentKind `bson:"incidentType" json:"incidentType"`
	Injuries          *bool        `bson:"injuries,omitempty" json:"injuries,omitempty"`
	InjuryDescription string       `bson:"injuryDesc,omitempty" json:"injuryDesc,omitempty"`
	Dispatched        bool         `bson:"dispatched" json:"dispatched"`
	Source            string       `bson:"source" json:"source"`
	Timestamp         time.Time    `bson:"ts" json:"ts"`
}

// IncidentRecord is the persisted incident document. History is append-only;
// snapshots are merged into the latest record with a matching address.
type IncidentRecord struct {
	ID                string             `bson:"id" json:"id"`
	Address           string             `bson:"address" json:"address"` // normalized
	IncidentType      IncidentKind       `bson:"incidentType" json:"incidentType"`
	Injuries          *bool              `bson:"injuries,omitempty" json:"injuries,omitempty"`
	InjuryDescription string             `bson:"injuryDesc,omitempty" json:"injuryDesc,omitempty"`
	Dispatched        bool               `bson:"dispatched" json:"dispatched"`
	History           []IncidentSnapshot `bson:"history" json:"history"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
