package config

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UserCollection          = "USERS"
	DoctorCollection        = "DOCTORS"
	PatientCollection       = "PATIENTS"
	LocationCollection      = "LOCATIONS"
	SpecialtyCollection     = "SPECIALTIES"
	ScheduleCollection      = "SCHEDULES"
	AppointmentCollection   = "APPOINTMENTS"
	MedicalRecordCollection = "MEDICAL_RECORDS"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

/*
* Connect the mongo client and ping it
* Keep the database handle for OpenCollection
 */
func ConnectDB(ctx context.Context) error {
	uri := Getenv("MONGO_URI", "mongodb://localhost:27017")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		Log.Error("Error while connecting to mongo: ", err)
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		Log.Error("Error while pinging mongo: ", err)
		return err
	}
	Client = client
	DB = client.Database(Getenv("MONGO_DB", "medibook"))
	return nil
}

func OpenCollection(name string) *mongo.Collection {
	return DB.Collection(name)
}

/*
* Unique indexes the controllers rely on
* users.email keeps registration honest
* schedules (doctorId,date) keeps the lazy upsert to one document
* medicalRecords.appointmentId keeps one record per appointment
 */
func EnsureIndexes(ctx context.Context) error {
	userIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := OpenCollection(UserCollection).Indexes().CreateOne(ctx, userIdx); err != nil {
		Log.Error("Error creating users email index: ", err)
		return err
	}

	scheduleIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := OpenCollection(ScheduleCollection).Indexes().CreateOne(ctx, scheduleIdx); err != nil {
		Log.Error("Error creating schedules doctorId/date index: ", err)
		return err
	}

	recordIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "appointmentId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := OpenCollection(MedicalRecordCollection).Indexes().CreateOne(ctx, recordIdx); err != nil {
		Log.Error("Error creating medicalRecords appointmentId index: ", err)
		return err
	}
	return nil
}
