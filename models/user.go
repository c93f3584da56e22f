package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName      string             `json:"fullName" bson:"fullName"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	Role          string             `json:"role" bson:"role"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Gender        string             `json:"gender,omitempty" bson:"gender,omitempty"`
	BirthYear     int                `json:"birthYear,omitempty" bson:"birthYear,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	LoginAttempts int                `json:"-" bson:"loginAttempts"`
	IsBlocked     bool               `json:"isBlocked" bson:"isBlocked"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
