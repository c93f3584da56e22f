package services

import (
	"time"

	"MediBook/config"
	"MediBook/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type statusCount struct {
	ID    string `bson:"_id"`
	Count int64  `bson:"count"`
}

func countByField(c *gin.Context, collection, field string) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
	}
	cursor, err := config.OpenCollection(collection).Aggregate(c, pipeline)
	if err != nil {
		config.Log.Error("Error from Aggregate on ", collection, ": ", err)
		return nil, err
	}
	defer cursor.Close(c)

	rows := []statusCount{}
	if err := cursor.All(c, &rows); err != nil {
		config.Log.Error("Error decoding aggregation rows: ", err)
		return nil, err
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

/*
* One aggregation per collection, plus today's booking volume
 */
func AdminDashboard(c *gin.Context) (map[string]interface{}, error) {
	usersByRole, err := countByField(c, config.UserCollection, "role")
	if err != nil {
		return nil, err
	}
	appointmentsByStatus, err := countByField(c, config.AppointmentCollection, "status")
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(DateLayout)
	todayCount, err := config.OpenCollection(config.AppointmentCollection).CountDocuments(c, bson.M{"date": today})
	if err != nil {
		config.Log.Error("Error counting today's appointments: ", err)
		return nil, err
	}

	return map[string]interface{}{
		"usersByRole":          usersByRole,
		"appointmentsByStatus": appointmentsByStatus,
		"appointmentsToday":    todayCount,
	}, nil
}

type DoctorDayEntry struct {
	Appointment models.Appointment `json:"appointment"`
	PatientName string             `json:"patientName"`
}

/*
* The doctor's day sheet, ordered by slot time, patient names joined in
 */
func DoctorDashboard(c *gin.Context, doctorUserID primitive.ObjectID, date string) ([]DoctorDayEntry, error) {
	doctor, err := fetchDoctorByUserID(c, doctorUserID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = time.Now().Format(DateLayout)
	}
	if _, err := ParseBookingDate(date); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := config.OpenCollection(config.AppointmentCollection).Find(c, bson.M{"doctorId": doctor.ID, "date": date}, opts)
	if err != nil {
		config.Log.Error("Error from Find while listing doctor day: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	appointments := []models.Appointment{}
	if err := cursor.All(c, &appointments); err != nil {
		config.Log.Error("Error decoding doctor day appointments: ", err)
		return nil, err
	}

	patientIDs := []primitive.ObjectID{}
	for _, a := range appointments {
		patientIDs = append(patientIDs, a.PatientID)
	}
	names := map[primitive.ObjectID]string{}
	if len(patientIDs) > 0 {
		userCursor, err := config.OpenCollection(config.UserCollection).Find(c, bson.M{"_id": bson.M{"$in": patientIDs}})
		if err != nil {
			config.Log.Error("Error from Find while fetching patient names: ", err)
			return nil, err
		}
		defer userCursor.Close(c)
		users := []models.User{}
		if err := userCursor.All(c, &users); err != nil {
			config.Log.Error("Error decoding patient users: ", err)
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.FullName
		}
	}

	entries := []DoctorDayEntry{}
	for _, a := range appointments {
		entries = append(entries, DoctorDayEntry{Appointment: a, PatientName: names[a.PatientID]})
	}
	return entries, nil
}
