package services

import (
	"context"
	"time"

	"MediBook/config"
	"MediBook/models"
	"MediBook/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// swapped out in tests
var scheduleNow = time.Now

/*
* Cut 30 minute slots from the working ranges, end exclusive
* The output order is the template order and therefore chronological
 */
func GenerateSlots(ranges []config.WorkRange) []models.Slot {
	slots := []models.Slot{}
	for _, r := range ranges {
		start, err := time.Parse(TimeLayout, r.Start)
		if err != nil {
			config.Log.Error("Invalid work range start: ", r.Start)
			continue
		}
		end, err := time.Parse(TimeLayout, r.End)
		if err != nil {
			config.Log.Error("Invalid work range end: ", r.End)
			continue
		}
		for start.Before(end) {
			slots = append(slots, models.Slot{Time: start.Format(TimeLayout)})
			start = start.Add(30 * time.Minute)
		}
	}
	return slots
}

func SlotTemplateFor(day time.Time) []models.Slot {
	return GenerateSlots(config.HoursFor(day.Weekday()))
}

func SlotInTemplate(template []models.Slot, timeGiven string) bool {
	for _, slot := range template {
		if slot.Time == timeGiven {
			return true
		}
	}
	return false
}

func ParseBookingDate(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, util.BadRequest(util.INVALID_DATE_FORMAT)
	}
	return day, nil
}

/*
* Past means strictly before today in the service's local civil calendar
 */
func IsPastDate(day time.Time) bool {
	now := scheduleNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(today)
}

/*
* Find the schedule for (doctor,date), create it from the weekday template
* when absent. $setOnInsert keeps the lazy path and the daily job from
* fighting over the same document, the unique index backs that up.
 */
func EnsureSchedule(ctx context.Context, doctorID primitive.ObjectID, day time.Time) (*models.Schedule, error) {
	coll := config.OpenCollection(config.ScheduleCollection)
	dateStr := day.Format(DateLayout)

	filter := bson.M{"doctorId": doctorID, "date": dateStr}
	update := bson.M{"$setOnInsert": bson.M{
		"doctorId":  doctorID,
		"date":      dateStr,
		"day":       day.Weekday().String(),
		"slots":     SlotTemplateFor(day),
		"createdAt": scheduleNow(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var schedule models.Schedule
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&schedule); err != nil {
		config.Log.Error("Error from FindOneAndUpdate while ensuring schedule: ", err)
		return nil, err
	}
	return &schedule, nil
}

/*
* The times not yet booked, in the order the slots are stored
 */
func FreeSlotTimes(slots []models.Slot) []string {
	free := []string{}
	for _, slot := range slots {
		if !slot.IsBooked {
			free = append(free, slot.Time)
		}
	}
	return free
}

/*
* The free slot times for (doctor,date) in template order
 */
func AvailableSlots(ctx context.Context, doctorID primitive.ObjectID, day time.Time) ([]string, error) {
	schedule, err := EnsureSchedule(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	return FreeSlotTimes(schedule.Slots), nil
}

/*
* Flip the slot to booked only while it is still free, in one conditional
* update. ModifiedCount zero means another booking won the race, the caller
* already checked the slot exists in the template.
 */
func BookSlot(ctx context.Context, doctorID primitive.ObjectID, dateStr, timeGiven string) error {
	coll := config.OpenCollection(config.ScheduleCollection)
	filter := bson.M{
		"doctorId": doctorID,
		"date":     dateStr,
		"slots":    bson.M{"$elemMatch": bson.M{"time": timeGiven, "isBooked": false}},
	}
	update := bson.M{"$set": bson.M{"slots.$.isBooked": true}}
	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		config.Log.Error("Error from UpdateOne while booking slot: ", err)
		return err
	}
	if result.ModifiedCount == 0 {
		return util.BadRequest(util.SLOT_ALREADY_BOOKED)
	}
	return nil
}

/*
* Put a slot back, used by cancellation, booking rollback and the expiry sweep
 */
func ReleaseSlot(ctx context.Context, doctorID primitive.ObjectID, dateStr, timeGiven string) error {
	coll := config.OpenCollection(config.ScheduleCollection)
	filter := bson.M{
		"doctorId": doctorID,
		"date":     dateStr,
		"slots":    bson.M{"$elemMatch": bson.M{"time": timeGiven, "isBooked": true}},
	}
	update := bson.M{"$set": bson.M{"slots.$.isBooked": false}}
	if _, err := coll.UpdateOne(ctx, filter, update); err != nil {
		config.Log.Error("Error from UpdateOne while releasing slot: ", err)
		return err
	}
	return nil
}

/*
* The handler-facing availability query
* Validates the id and date and rejects past dates before touching the store
 */
func AvailabilityQuery(ctx context.Context, doctorID, date string) ([]string, error) {
	id, err := parseObjectID(doctorID)
	if err != nil {
		return nil, err
	}
	day, err := ParseBookingDate(date)
	if err != nil {
		return nil, err
	}
	if IsPastDate(day) {
		return nil, util.BadRequest(util.DATE_IN_PAST)
	}
	count, err := config.OpenCollection(config.DoctorCollection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		config.Log.Error("Error from CountDocuments while checking doctor: ", err)
		return nil, err
	}
	if count == 0 {
		return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
	}
	return AvailableSlots(ctx, id, day)
}

/*
* Used by the daily cron, pre-creates today's schedule for every doctor
 */
func EnsureSchedulesForAllDoctors(ctx context.Context, day time.Time) {
	cursor, err := config.OpenCollection(config.DoctorCollection).Find(ctx, bson.M{})
	if err != nil {
		config.Log.Error("Error from Find while listing doctors for scheduling: ", err)
		return
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		config.Log.Error("Error decoding doctors for scheduling: ", err)
		return
	}
	for _, doctor := range doctors {
		if _, err := EnsureSchedule(ctx, doctor.ID, day); err != nil && err != mongo.ErrNoDocuments {
			config.Log.Error("Error generating schedule for doctor ", doctor.ID.Hex(), ": ", err)
		}
	}
}
