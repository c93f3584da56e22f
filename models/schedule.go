package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Slot struct {
	Time     string `json:"time" bson:"time"`
	IsBooked bool   `json:"isBooked" bson:"isBooked"`
}

// Schedule is one document per (doctor, date). Date is "YYYY-MM-DD" in the
// service's local calendar, slots stay in template order.
type Schedule struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DoctorID  primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	Date      string             `json:"date" bson:"date"`
	Day       string             `json:"day" bson:"day"`
	Slots     []Slot             `json:"slots" bson:"slots"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
