package services

import (
	"net/http"
	"testing"
	"time"

	"MediBook/models"
	"MediBook/util"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func pendingAppointment(patientID primitive.ObjectID) *models.Appointment {
	return &models.Appointment{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		Status:    models.StatusPending,
	}
}

func TestOTPPrecheck_RejectsForeignPatient(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	appointment := pendingAppointment(owner)

	err := otpPrecheck(appointment, stranger)
	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, util.StatusOf(err))
	assert.Equal(t, util.NOT_YOUR_APPOINTMENT, util.MessageOf(err))
}

// Ownership is checked before any state detail so a stranger probing an
// appointmentId cannot tell pending from confirmed.
func TestOTPPrecheck_OwnershipBeforeState(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	appointment := pendingAppointment(owner)
	appointment.Status = models.StatusConfirmed
	appointment.IsVerified = true

	err := otpPrecheck(appointment, stranger)
	assert.Equal(t, util.NOT_YOUR_APPOINTMENT, util.MessageOf(err))
}

func TestOTPPrecheck_RejectsVerified(t *testing.T) {
	owner := primitive.NewObjectID()
	appointment := pendingAppointment(owner)
	appointment.IsVerified = true

	err := otpPrecheck(appointment, owner)
	assert.Equal(t, util.APPOINTMENT_ALREADY_VERIFIED, util.MessageOf(err))
}

func TestOTPPrecheck_RejectsNonPending(t *testing.T) {
	owner := primitive.NewObjectID()
	for _, status := range []string{models.StatusConfirmed, models.StatusCancelled, models.StatusExpired, models.StatusCompleted} {
		appointment := pendingAppointment(owner)
		appointment.Status = status

		err := otpPrecheck(appointment, owner)
		assert.Equal(t, util.APPOINTMENT_NOT_PENDING, util.MessageOf(err), status)
	}
}

func TestOTPPrecheck_AllowsOwnerPending(t *testing.T) {
	owner := primitive.NewObjectID()
	assert.NoError(t, otpPrecheck(pendingAppointment(owner), owner))
}

func TestOrderPatientAppointments(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.Local)
	at := func(day, hour int) models.Appointment {
		return models.Appointment{Datetime: time.Date(2026, 1, day, hour, 0, 0, 0, time.Local)}
	}

	ordered := orderPatientAppointments([]models.Appointment{
		at(20, 9),  // far future
		at(3, 10),  // older past
		at(6, 8),   // next upcoming
		at(5, 9),   // earlier today, past
		at(6, 15),  // later upcoming
	}, now)

	assert.Len(t, ordered, 5)
	assert.Equal(t, at(6, 8).Datetime, ordered[0].Datetime)
	assert.Equal(t, at(6, 15).Datetime, ordered[1].Datetime)
	assert.Equal(t, at(20, 9).Datetime, ordered[2].Datetime)
	assert.Equal(t, at(5, 9).Datetime, ordered[3].Datetime)
	assert.Equal(t, at(3, 10).Datetime, ordered[4].Datetime)
}

func TestOrderPatientAppointments_Empty(t *testing.T) {
	assert.Empty(t, orderPatientAppointments([]models.Appointment{}, time.Now()))
}
