package services

import (
	"context"
	"sort"
	"time"

	"MediBook/config"
	"MediBook/metrics"
	"MediBook/models"
	"MediBook/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// test seams, following the startServer pattern in main.go
var (
	appointmentNow = time.Now
	generateOTP    = util.GenerateOTP
)

type BookingInput struct {
	LocationID  string `json:"locationId" binding:"required"`
	SpecialtyID string `json:"specialtyId" binding:"required"`
	DoctorID    string `json:"doctorId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

// BookingResult carries the plaintext OTP back to the caller exactly once.
type BookingResult struct {
	Appointment models.Appointment `json:"appointment"`
	OTP         string             `json:"otp"`
}

/*
* Combine the civil date with the "HH:MM" slot label into an absolute instant
 */
func combineDateTime(day time.Time, timeGiven string) (time.Time, error) {
	clock, err := time.Parse(TimeLayout, timeGiven)
	if err != nil {
		return time.Time{}, util.BadRequest(util.SLOT_DOES_NOT_EXIST)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}

func fetchAppointment(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := config.OpenCollection(config.AppointmentCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching appointment: ", err)
		return nil, err
	}
	return &appointment, nil
}

/*
* Validate ids, the doctor's specialty/location pairing and the date
* Reserve the slot with one conditional update, first writer wins
* Only then insert the pending appointment with its OTP
* An insert failure rolls the slot back best effort, the expiry sweep is the backstop
 */
func CreateAppointment(c *gin.Context, patientID primitive.ObjectID, input BookingInput) (*BookingResult, error) {
	locationID, err := parseObjectID(input.LocationID)
	if err != nil {
		return nil, err
	}
	specialtyID, err := parseObjectID(input.SpecialtyID)
	if err != nil {
		return nil, err
	}
	doctorID, err := parseObjectID(input.DoctorID)
	if err != nil {
		return nil, err
	}

	var doctor models.Doctor
	err = config.OpenCollection(config.DoctorCollection).FindOne(c, bson.M{"_id": doctorID}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching doctor: ", err)
		return nil, err
	}
	if doctor.SpecialtyID != specialtyID || doctor.LocationID != locationID {
		metrics.BookingsTotal.WithLabelValues("rejected").Inc()
		return nil, util.BadRequest(util.DOCTOR_SPECIALTY_MISMATCH)
	}

	day, err := ParseBookingDate(input.Date)
	if err != nil {
		return nil, err
	}
	if IsPastDate(day) {
		metrics.BookingsTotal.WithLabelValues("rejected").Inc()
		return nil, util.BadRequest(util.DATE_IN_PAST)
	}
	if !SlotInTemplate(SlotTemplateFor(day), input.Time) {
		metrics.BookingsTotal.WithLabelValues("rejected").Inc()
		return nil, util.BadRequest(util.SLOT_DOES_NOT_EXIST)
	}

	if _, err := EnsureSchedule(c, doctorID, day); err != nil {
		return nil, err
	}
	if err := BookSlot(c, doctorID, input.Date, input.Time); err != nil {
		metrics.BookingsTotal.WithLabelValues("slot_taken").Inc()
		return nil, err
	}

	code, err := generateOTP(6)
	if err != nil {
		config.Log.Error("Error generating OTP: ", err)
		releaseBookedSlot(c, doctorID, input.Date, input.Time)
		return nil, err
	}
	otpHash, err := util.HashOTP(code)
	if err != nil {
		config.Log.Error("Error hashing OTP: ", err)
		releaseBookedSlot(c, doctorID, input.Date, input.Time)
		return nil, err
	}

	datetime, err := combineDateTime(day, input.Time)
	if err != nil {
		releaseBookedSlot(c, doctorID, input.Date, input.Time)
		return nil, err
	}

	now := appointmentNow()
	appointment := models.Appointment{
		ID:           primitive.NewObjectID(),
		LocationID:   locationID,
		SpecialtyID:  specialtyID,
		DoctorID:     doctorID,
		PatientID:    patientID,
		Date:         input.Date,
		Time:         input.Time,
		Datetime:     datetime,
		Status:       models.StatusPending,
		IsVerified:   false,
		OTPHash:      otpHash,
		OTPExpiresAt: now.Add(config.OTPTTL()),
		Reason:       input.Reason,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := config.OpenCollection(config.AppointmentCollection).InsertOne(c, appointment); err != nil {
		config.Log.Error("Error from InsertOne while creating appointment: ", err)
		releaseBookedSlot(c, doctorID, input.Date, input.Time)
		return nil, err
	}

	metrics.BookingsTotal.WithLabelValues("created").Inc()
	if err := config.SetCache(c, config.AppointmentKey+appointment.ID.Hex(), appointment); err != nil {
		config.Log.Error("Error caching new appointment: ", err)
	}
	config.Log.Info("Appointment created: ", appointment.ID.Hex(), " OTP issued, expires ", appointment.OTPExpiresAt)
	return &BookingResult{Appointment: appointment, OTP: code}, nil
}

func releaseBookedSlot(ctx context.Context, doctorID primitive.ObjectID, dateStr, timeGiven string) {
	if err := ReleaseSlot(ctx, doctorID, dateStr, timeGiven); err != nil {
		config.Log.Error("Error rolling back slot ", dateStr, " ", timeGiven, ": ", err)
	}
}

/*
* Shared gate for the OTP endpoints
* The caller must own the appointment and it must still be pending,
* ownership first so strangers learn nothing about the booking's state
 */
func otpPrecheck(appointment *models.Appointment, patientID primitive.ObjectID) error {
	if appointment.PatientID != patientID {
		return util.Forbidden(util.NOT_YOUR_APPOINTMENT)
	}
	if appointment.IsVerified {
		return util.BadRequest(util.APPOINTMENT_ALREADY_VERIFIED)
	}
	if appointment.Status != models.StatusPending {
		return util.BadRequest(util.APPOINTMENT_NOT_PENDING)
	}
	return nil
}

/*
* pending -> confirmed when the code matches and has not expired
* Wrong code and expired code leave the appointment pending, each with its own message
 */
func VerifyOTP(c *gin.Context, appointmentID string, patientID primitive.ObjectID, code string) (*models.Appointment, error) {
	id, err := parseObjectID(appointmentID)
	if err != nil {
		return nil, err
	}
	appointment, err := fetchAppointment(c, id)
	if err != nil {
		return nil, err
	}
	if err := otpPrecheck(appointment, patientID); err != nil {
		return nil, err
	}
	if appointmentNow().After(appointment.OTPExpiresAt) {
		metrics.OTPVerifications.WithLabelValues("expired").Inc()
		return nil, util.BadRequest(util.OTP_EXPIRED)
	}
	if !util.CheckOTP(appointment.OTPHash, code) {
		metrics.OTPVerifications.WithLabelValues("mismatch").Inc()
		return nil, util.BadRequest(util.OTP_MISMATCH)
	}

	coll := config.OpenCollection(config.AppointmentCollection)
	filter := bson.M{"_id": id, "status": models.StatusPending}
	update := bson.M{
		"$set":   bson.M{"status": models.StatusConfirmed, "isVerified": true, "updatedAt": appointmentNow()},
		"$unset": bson.M{"otpHash": "", "otpExpiresAt": ""},
	}
	result, err := coll.UpdateOne(c, filter, update)
	if err != nil {
		config.Log.Error("Error from UpdateOne while confirming appointment: ", err)
		return nil, err
	}
	if result.ModifiedCount == 0 {
		return nil, util.BadRequest(util.APPOINTMENT_NOT_PENDING)
	}

	metrics.OTPVerifications.WithLabelValues("success").Inc()
	appointment.Status = models.StatusConfirmed
	appointment.IsVerified = true
	appointment.OTPHash = ""
	appointment.OTPExpiresAt = time.Time{}
	key := config.AppointmentKey + appointment.ID.Hex()
	if err := config.DeleteCache(c, key); err != nil {
		config.Log.Error("Failed deleting stale appointment cache: ", err)
	}
	if err := config.SetCache(c, key, appointment); err != nil {
		config.Log.Error("Failed caching confirmed appointment: ", err)
	}
	return appointment, nil
}

/*
* Only the owning patient's pending appointments can get a fresh code
* The new hash and expiry overwrite the old ones, no grace window
 */
func ResendOTP(c *gin.Context, appointmentID string, patientID primitive.ObjectID) (string, error) {
	id, err := parseObjectID(appointmentID)
	if err != nil {
		return "", err
	}
	appointment, err := fetchAppointment(c, id)
	if err != nil {
		return "", err
	}
	if err := otpPrecheck(appointment, patientID); err != nil {
		return "", err
	}

	code, err := generateOTP(6)
	if err != nil {
		config.Log.Error("Error generating OTP on resend: ", err)
		return "", err
	}
	otpHash, err := util.HashOTP(code)
	if err != nil {
		config.Log.Error("Error hashing OTP on resend: ", err)
		return "", err
	}

	now := appointmentNow()
	update := bson.M{"$set": bson.M{
		"otpHash":      otpHash,
		"otpExpiresAt": now.Add(config.OTPTTL()),
		"updatedAt":    now,
	}}
	filter := bson.M{"_id": id, "status": models.StatusPending}
	result, err := config.OpenCollection(config.AppointmentCollection).UpdateOne(c, filter, update)
	if err != nil {
		config.Log.Error("Error from UpdateOne while resending OTP: ", err)
		return "", err
	}
	if result.ModifiedCount == 0 {
		return "", util.BadRequest(util.APPOINTMENT_NOT_PENDING)
	}
	return code, nil
}

/*
* Ownership checked against the authenticated patient
* The status flip is conditional so two cancels cannot both free the slot
 */
func CancelAppointment(c *gin.Context, appointmentID string, patientID primitive.ObjectID) error {
	id, err := parseObjectID(appointmentID)
	if err != nil {
		return err
	}
	appointment, err := fetchAppointment(c, id)
	if err != nil {
		return err
	}
	if appointment.PatientID != patientID {
		return util.Forbidden(util.NOT_YOUR_APPOINTMENT)
	}
	if !models.CanTransition(appointment.Status, models.StatusCancelled) {
		return util.BadRequest(util.CANNOT_CANCEL)
	}

	coll := config.OpenCollection(config.AppointmentCollection)
	filter := bson.M{"_id": id, "status": bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}}}
	update := bson.M{"$set": bson.M{"status": models.StatusCancelled, "updatedAt": appointmentNow()}}
	result, err := coll.UpdateOne(c, filter, update)
	if err != nil {
		config.Log.Error("Error from UpdateOne while cancelling appointment: ", err)
		return err
	}
	if result.ModifiedCount == 0 {
		return util.BadRequest(util.CANNOT_CANCEL)
	}

	if err := ReleaseSlot(c, appointment.DoctorID, appointment.Date, appointment.Time); err != nil {
		config.Log.Error("Error releasing slot after cancellation: ", err)
	}
	if err := config.DeleteCache(c, config.AppointmentKey+id.Hex()); err != nil {
		config.Log.Error("Failed deleting cancelled appointment cache: ", err)
	}
	return nil
}

// Grace past the OTP expiry before the sweep claims the slot back, so a
// patient mid-resend is not cut off.
const expiryGrace = 30 * time.Minute

/*
* The periodic sweep behind abandoned bookings
* pending appointments whose OTP lapsed past the grace go to expired and
* their slots come back, each flip conditional so a concurrent verify or
* cancel wins cleanly
 */
func ExpireStaleAppointments(ctx context.Context) {
	cutoff := appointmentNow().Add(-expiryGrace)
	coll := config.OpenCollection(config.AppointmentCollection)

	cursor, err := coll.Find(ctx, bson.M{
		"status":       models.StatusPending,
		"otpExpiresAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		config.Log.Error("Error from Find while sweeping stale appointments: ", err)
		return
	}
	defer cursor.Close(ctx)

	stale := []models.Appointment{}
	if err := cursor.All(ctx, &stale); err != nil {
		config.Log.Error("Error decoding stale appointments: ", err)
		return
	}

	for _, appointment := range stale {
		filter := bson.M{"_id": appointment.ID, "status": models.StatusPending}
		update := bson.M{
			"$set":   bson.M{"status": models.StatusExpired, "updatedAt": appointmentNow()},
			"$unset": bson.M{"otpHash": "", "otpExpiresAt": ""},
		}
		result, err := coll.UpdateOne(ctx, filter, update)
		if err != nil {
			config.Log.Error("Error expiring appointment ", appointment.ID.Hex(), ": ", err)
			continue
		}
		if result.ModifiedCount == 0 {
			continue
		}
		if err := ReleaseSlot(ctx, appointment.DoctorID, appointment.Date, appointment.Time); err != nil {
			config.Log.Error("Error releasing slot for expired appointment ", appointment.ID.Hex(), ": ", err)
		}
		if err := config.DeleteCache(ctx, config.AppointmentKey+appointment.ID.Hex()); err != nil {
			config.Log.Error("Failed deleting expired appointment cache: ", err)
		}
		metrics.AppointmentsExpired.Inc()
		config.Log.Info("Appointment expired: ", appointment.ID.Hex())
	}
}

/*
* Read through the cache, then check visibility
* Admin sees all, the doctor on the appointment sees it, the owning patient sees it
 */
func FetchAppointmentByID(c *gin.Context, appointmentID string) (*models.Appointment, error) {
	id, err := parseObjectID(appointmentID)
	if err != nil {
		return nil, err
	}

	key := config.AppointmentKey + id.Hex()
	var appointment models.Appointment
	hit, err := config.GetCache(c, key, &appointment)
	if err != nil {
		config.Log.Error("Error from GetCache while fetching appointment: ", err)
	}
	if !hit {
		fetched, err := fetchAppointment(c, id)
		if err != nil {
			return nil, err
		}
		appointment = *fetched
		if err := config.SetCache(c, key, appointment); err != nil {
			config.Log.Error("Error caching appointment: ", err)
		}
	}

	if err := checkAppointmentAccess(c, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func checkAppointmentAccess(c *gin.Context, appointment *models.Appointment) error {
	role := c.GetString("role")
	userID, err := UserIDFromContext(c)
	if err != nil {
		return err
	}
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RolePatient:
		if appointment.PatientID == userID {
			return nil
		}
	case models.RoleDoctor:
		doctor, err := fetchDoctorByUserID(c, userID)
		if err != nil {
			return err
		}
		if appointment.DoctorID == doctor.ID {
			return nil
		}
	}
	return util.Forbidden(util.NOT_YOUR_APPOINTMENT)
}

/*
* Upcoming first with the soonest on top, then history newest first
 */
func orderPatientAppointments(appointments []models.Appointment, now time.Time) []models.Appointment {
	upcoming := []models.Appointment{}
	past := []models.Appointment{}
	for _, a := range appointments {
		if a.Datetime.Before(now) {
			past = append(past, a)
		} else {
			upcoming = append(upcoming, a)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Datetime.Before(upcoming[j].Datetime) })
	sort.Slice(past, func(i, j int) bool { return past[i].Datetime.After(past[j].Datetime) })
	return append(upcoming, past...)
}

/*
* The patient's own bookings, next appointment first
 */
func FetchPatientAppointments(c *gin.Context, patientID primitive.ObjectID) ([]models.Appointment, error) {
	coll := config.OpenCollection(config.AppointmentCollection)
	opts := options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}})
	cursor, err := coll.Find(c, bson.M{"patientId": patientID}, opts)
	if err != nil {
		config.Log.Error("Error from Find while listing patient appointments: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	appointments := []models.Appointment{}
	if err := cursor.All(c, &appointments); err != nil {
		config.Log.Error("Error decoding patient appointments: ", err)
		return nil, err
	}
	return orderPatientAppointments(appointments, appointmentNow()), nil
}
