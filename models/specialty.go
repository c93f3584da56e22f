package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Specialty struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description,omitempty" bson:"description,omitempty"`
	Locations   []primitive.ObjectID `json:"locations" bson:"locations"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (s Specialty) OfferedAt(locationID primitive.ObjectID) bool {
	for _, id := range s.Locations {
		if id == locationID {
			return true
		}
	}
	return false
}
