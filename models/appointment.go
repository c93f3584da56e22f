package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// cancelled, completed and expired are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LocationID   primitive.ObjectID `json:"locationId" bson:"locationId"`
	SpecialtyID  primitive.ObjectID `json:"specialtyId" bson:"specialtyId"`
	DoctorID     primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	PatientID    primitive.ObjectID `json:"patientId" bson:"patientId"`
	Date         string             `json:"date" bson:"date"`
	Time         string             `json:"time" bson:"time"`
	Datetime     time.Time          `json:"datetime" bson:"datetime"`
	Status       string             `json:"status" bson:"status"`
	IsVerified   bool               `json:"isVerified" bson:"isVerified"`
	OTPHash      string             `json:"-" bson:"otpHash,omitempty"`
	OTPExpiresAt time.Time          `json:"-" bson:"otpExpiresAt,omitempty"`
	Reason       string             `json:"reason" bson:"reason"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
