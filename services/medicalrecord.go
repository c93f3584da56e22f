package services

import (
	"time"

	"MediBook/config"
	"MediBook/models"
	"MediBook/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MedicalRecordInput struct {
	AppointmentID string                `json:"appointmentId" binding:"required"`
	Vitals        models.Vitals         `json:"vitals"`
	Diagnosis     string                `json:"diagnosis" binding:"required"`
	Prescriptions []models.Prescription `json:"prescriptions"`
	Notes         string                `json:"notes"`
}

type MedicalRecordUpdateInput struct {
	Vitals        *models.Vitals        `json:"vitals"`
	Diagnosis     string                `json:"diagnosis"`
	Prescriptions []models.Prescription `json:"prescriptions"`
	Notes         string                `json:"notes"`
}

/*
* Copy the display fields off the live documents so later profile edits do
* not rewrite history
 */
func buildSnapshot(c *gin.Context, doctor *models.Doctor, appointment *models.Appointment) (models.RecordSnapshot, error) {
	snapshot := models.RecordSnapshot{}

	doctorUser, err := fetchUserByID(c, doctor.UserID)
	if err != nil {
		return snapshot, err
	}
	patientUser, err := fetchUserByID(c, appointment.PatientID)
	if err != nil {
		return snapshot, err
	}
	specialty, err := fetchSpecialtyByID(c, doctor.SpecialtyID)
	if err != nil {
		return snapshot, err
	}
	location, err := fetchLocationByID(c, doctor.LocationID)
	if err != nil {
		return snapshot, err
	}

	snapshot.DoctorName = doctorUser.FullName
	snapshot.DoctorSpecialty = specialty.Name
	snapshot.DoctorLocation = location.Name
	snapshot.PatientName = patientUser.FullName
	snapshot.PatientEmail = patientUser.Email
	return snapshot, nil
}

/*
* Only the attending doctor, only once per appointment, only after the
* booking was confirmed
* The unique index on appointmentId backs up the pre-check
* A successful insert flips the appointment to completed
 */
func CreateMedicalRecord(c *gin.Context, doctorUserID primitive.ObjectID, input MedicalRecordInput) (*models.MedicalRecord, error) {
	appointmentID, err := parseObjectID(input.AppointmentID)
	if err != nil {
		return nil, err
	}
	appointment, err := fetchAppointment(c, appointmentID)
	if err != nil {
		return nil, err
	}

	doctor, err := fetchDoctorByUserID(c, doctorUserID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != doctor.ID {
		return nil, util.Forbidden(util.NOT_RECORD_DOCTOR)
	}
	if appointment.Status == models.StatusCompleted {
		return nil, util.BadRequest(util.MEDICAL_RECORD_EXISTS)
	}
	if appointment.Status != models.StatusConfirmed {
		return nil, util.BadRequest(util.APPOINTMENT_NOT_CONFIRMED)
	}

	recordColl := config.OpenCollection(config.MedicalRecordCollection)
	count, err := recordColl.CountDocuments(c, bson.M{"appointmentId": appointmentID})
	if err != nil {
		config.Log.Error("Error from CountDocuments while checking existing record: ", err)
		return nil, err
	}
	if count > 0 {
		return nil, util.BadRequest(util.MEDICAL_RECORD_EXISTS)
	}

	snapshot, err := buildSnapshot(c, doctor, appointment)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := models.MedicalRecord{
		ID:            primitive.NewObjectID(),
		AppointmentID: appointmentID,
		DoctorID:      doctor.ID,
		PatientID:     appointment.PatientID,
		Snapshot:      snapshot,
		Vitals:        input.Vitals,
		Diagnosis:     input.Diagnosis,
		Prescriptions: input.Prescriptions,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := recordColl.InsertOne(c, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, util.BadRequest(util.MEDICAL_RECORD_EXISTS)
		}
		config.Log.Error("Error from InsertOne while creating medical record: ", err)
		return nil, err
	}

	filter := bson.M{"_id": appointmentID, "status": models.StatusConfirmed}
	update := bson.M{"$set": bson.M{"status": models.StatusCompleted, "updatedAt": now}}
	if _, err := config.OpenCollection(config.AppointmentCollection).UpdateOne(c, filter, update); err != nil {
		config.Log.Error("Error marking appointment completed: ", err)
	}
	if err := config.DeleteCache(c, config.AppointmentKey+appointmentID.Hex()); err != nil {
		config.Log.Error("Failed deleting completed appointment cache: ", err)
	}
	if err := config.SetCache(c, config.MedicalRecordKey+record.ID.Hex(), record); err != nil {
		config.Log.Error("Error caching new medical record: ", err)
	}
	return &record, nil
}

/*
* Patient sees own, doctor sees own-authored, admin sees all
 */
func checkRecordAccess(c *gin.Context, record *models.MedicalRecord) error {
	role := c.GetString("role")
	userID, err := UserIDFromContext(c)
	if err != nil {
		return err
	}
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RolePatient:
		if record.PatientID == userID {
			return nil
		}
	case models.RoleDoctor:
		doctor, err := fetchDoctorByUserID(c, userID)
		if err != nil {
			return err
		}
		if record.DoctorID == doctor.ID {
			return nil
		}
	}
	return util.Forbidden(util.NO_RECORD_ACCESS)
}

func FetchMedicalRecordByID(c *gin.Context, recordID string) (*models.MedicalRecord, error) {
	id, err := parseObjectID(recordID)
	if err != nil {
		return nil, err
	}

	key := config.MedicalRecordKey + id.Hex()
	var record models.MedicalRecord
	hit, err := config.GetCache(c, key, &record)
	if err != nil {
		config.Log.Error("Error from GetCache while fetching medical record: ", err)
	}
	if !hit {
		err := config.OpenCollection(config.MedicalRecordCollection).FindOne(c, bson.M{"_id": id}).Decode(&record)
		if err == mongo.ErrNoDocuments {
			return nil, util.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
		}
		if err != nil {
			config.Log.Error("Error from FindOne while fetching medical record: ", err)
			return nil, err
		}
		if err := config.SetCache(c, key, record); err != nil {
			config.Log.Error("Error caching medical record: ", err)
		}
	}

	if err := checkRecordAccess(c, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

/*
* The listing filter depends on who is asking
 */
func FetchMedicalRecords(c *gin.Context) ([]models.MedicalRecord, error) {
	role := c.GetString("role")
	userID, err := UserIDFromContext(c)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	switch role {
	case models.RoleAdmin:
	case models.RolePatient:
		filter["patientId"] = userID
	case models.RoleDoctor:
		doctor, err := fetchDoctorByUserID(c, userID)
		if err != nil {
			return nil, err
		}
		filter["doctorId"] = doctor.ID
	default:
		return nil, util.Forbidden(util.NO_RECORD_ACCESS)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := config.OpenCollection(config.MedicalRecordCollection).Find(c, filter, opts)
	if err != nil {
		config.Log.Error("Error from Find while listing medical records: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	records := []models.MedicalRecord{}
	if err := cursor.All(c, &records); err != nil {
		config.Log.Error("Error decoding medical records: ", err)
		return nil, err
	}
	return records, nil
}

/*
* Clinical fields only, the snapshot never changes after creation
 */
func UpdateMedicalRecord(c *gin.Context, recordID string, doctorUserID primitive.ObjectID, input MedicalRecordUpdateInput) (*models.MedicalRecord, error) {
	id, err := parseObjectID(recordID)
	if err != nil {
		return nil, err
	}

	var record models.MedicalRecord
	err = config.OpenCollection(config.MedicalRecordCollection).FindOne(c, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching medical record: ", err)
		return nil, err
	}

	doctor, err := fetchDoctorByUserID(c, doctorUserID)
	if err != nil {
		return nil, err
	}
	if record.DoctorID != doctor.ID {
		return nil, util.Forbidden(util.NOT_RECORD_DOCTOR)
	}

	fields := bson.M{"updatedAt": time.Now()}
	if input.Vitals != nil {
		fields["vitals"] = *input.Vitals
	}
	if input.Diagnosis != "" {
		fields["diagnosis"] = input.Diagnosis
	}
	if input.Prescriptions != nil {
		fields["prescriptions"] = input.Prescriptions
	}
	if input.Notes != "" {
		fields["notes"] = input.Notes
	}
	if _, err := config.OpenCollection(config.MedicalRecordCollection).UpdateOne(c, bson.M{"_id": id}, bson.M{"$set": fields}); err != nil {
		config.Log.Error("Error from UpdateOne while updating medical record: ", err)
		return nil, err
	}

	var updated models.MedicalRecord
	if err := config.OpenCollection(config.MedicalRecordCollection).FindOne(c, bson.M{"_id": id}).Decode(&updated); err != nil {
		config.Log.Error("Error from FindOne after updating medical record: ", err)
		return nil, err
	}

	key := config.MedicalRecordKey + id.Hex()
	if err := config.DeleteCache(c, key); err != nil {
		config.Log.Error("Failed deleting old medical record cache: ", err)
	}
	if err := config.SetCache(c, key, updated); err != nil {
		config.Log.Error("Failed caching updated medical record: ", err)
	}
	return &updated, nil
}

func DeleteMedicalRecord(c *gin.Context, recordID string) error {
	id, err := parseObjectID(recordID)
	if err != nil {
		return err
	}
	result, err := config.OpenCollection(config.MedicalRecordCollection).DeleteOne(c, bson.M{"_id": id})
	if err != nil {
		config.Log.Error("Error from DeleteOne while deleting medical record: ", err)
		return err
	}
	if result.DeletedCount == 0 {
		return util.NotFound(util.MEDICAL_RECORD_NOT_FOUND)
	}
	if err := config.DeleteCache(c, config.MedicalRecordKey+id.Hex()); err != nil {
		config.Log.Error("Failed deleting medical record cache: ", err)
	}
	return nil
}
