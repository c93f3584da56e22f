package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordSnapshot is copied from the live doctor/patient documents when the
// record is created, so later profile edits do not rewrite history.
type RecordSnapshot struct {
	DoctorName      string `json:"doctorName" bson:"doctorName"`
	DoctorSpecialty string `json:"doctorSpecialty" bson:"doctorSpecialty"`
	DoctorLocation  string `json:"doctorLocation" bson:"doctorLocation"`
	PatientName     string `json:"patientName" bson:"patientName"`
	PatientEmail    string `json:"patientEmail" bson:"patientEmail"`
}

type Vitals struct {
	HeightCm      float64 `json:"heightCm,omitempty" bson:"heightCm,omitempty"`
	WeightKg      float64 `json:"weightKg,omitempty" bson:"weightKg,omitempty"`
	BloodPressure string  `json:"bloodPressure,omitempty" bson:"bloodPressure,omitempty"`
	HeartRate     int     `json:"heartRate,omitempty" bson:"heartRate,omitempty"`
	TemperatureC  float64 `json:"temperatureC,omitempty" bson:"temperatureC,omitempty"`
}

type Prescription struct {
	Medicine     string `json:"medicine" bson:"medicine"`
	Dosage       string `json:"dosage" bson:"dosage"`
	Frequency    string `json:"frequency" bson:"frequency"`
	DurationDays int    `json:"durationDays" bson:"durationDays"`
	Notes        string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type MedicalRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AppointmentID primitive.ObjectID `json:"appointmentId" bson:"appointmentId"`
	DoctorID      primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	PatientID     primitive.ObjectID `json:"patientId" bson:"patientId"`
	Snapshot      RecordSnapshot     `json:"snapshot" bson:"snapshot"`
	Vitals        Vitals             `json:"vitals" bson:"vitals"`
	Diagnosis     string             `json:"diagnosis" bson:"diagnosis"`
	Prescriptions []Prescription     `json:"prescriptions" bson:"prescriptions"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
