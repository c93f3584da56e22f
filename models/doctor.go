package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor is the profile behind a role=doctor user. The referenced specialty
// must be offered at the referenced location, checked on create and update.
type Doctor struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	SpecialtyID primitive.ObjectID `json:"specialtyId" bson:"specialtyId"`
	LocationID  primitive.ObjectID `json:"locationId" bson:"locationId"`
	Bio         string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DoctorInfo is the dropdown/listing shape, profile joined with the user name.
type DoctorInfo struct {
	ID          primitive.ObjectID `json:"id"`
	FullName    string             `json:"fullName"`
	SpecialtyID primitive.ObjectID `json:"specialtyId"`
	LocationID  primitive.ObjectID `json:"locationId"`
	Bio         string             `json:"bio,omitempty"`
	Phone       string             `json:"phone,omitempty"`
}
