package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location carries no specialty back-references. Which specialties a location
// offers is derived from Specialty.locations, the single source of truth.
type Location struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Address   string             `json:"address" bson:"address"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
