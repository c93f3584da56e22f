package services

import (
	"strings"
	"time"

	"MediBook/config"
	"MediBook/models"
	"MediBook/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorInput struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone"`
	SpecialtyID string `json:"specialtyId" binding:"required"`
	LocationID  string `json:"locationId" binding:"required"`
	Bio         string `json:"bio"`
}

type DoctorUpdateInput struct {
	SpecialtyID string `json:"specialtyId" binding:"required"`
	LocationID  string `json:"locationId" binding:"required"`
	Bio         string `json:"bio"`
	Phone       string `json:"phone"`
}

/*
* The doctor's specialty must be offered at the doctor's location
* Checked here at create/update time, the store enforces nothing
 */
func checkSpecialtyAtLocation(c *gin.Context, specialtyID, locationID primitive.ObjectID) error {
	specialty, err := fetchSpecialtyByID(c, specialtyID)
	if err != nil {
		return err
	}
	if _, err := fetchLocationByID(c, locationID); err != nil {
		return err
	}
	if !specialty.OfferedAt(locationID) {
		return util.BadRequest(util.SPECIALTY_NOT_AT_LOCATION)
	}
	return nil
}

/*
* A doctor is a user plus a profile
* The user carries identity and login, the profile carries the placement
 */
func CreateDoctor(c *gin.Context, input DoctorInput) (*models.Doctor, error) {
	specialtyID, err := parseObjectID(input.SpecialtyID)
	if err != nil {
		return nil, err
	}
	locationID, err := parseObjectID(input.LocationID)
	if err != nil {
		return nil, err
	}
	if err := checkSpecialtyAtLocation(c, specialtyID, locationID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	userColl := config.OpenCollection(config.UserCollection)
	count, err := userColl.CountDocuments(c, bson.M{"email": email})
	if err != nil {
		config.Log.Error("Error from CountDocuments while checking doctor email: ", err)
		return nil, err
	}
	if count > 0 {
		return nil, util.BadRequest(util.EMAIL_ALREADY_REGISTERED)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		config.Log.Error("Error hashing doctor password: ", err)
		return nil, err
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  strings.TrimSpace(input.FullName),
		Email:     email,
		Password:  hashed,
		Role:      models.RoleDoctor,
		Phone:     input.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := userColl.InsertOne(c, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, util.BadRequest(util.EMAIL_ALREADY_REGISTERED)
		}
		config.Log.Error("Error from InsertOne while creating doctor user: ", err)
		return nil, err
	}

	doctor := models.Doctor{
		ID:          primitive.NewObjectID(),
		UserID:      user.ID,
		SpecialtyID: specialtyID,
		LocationID:  locationID,
		Bio:         input.Bio,
		Phone:       input.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := config.OpenCollection(config.DoctorCollection).InsertOne(c, doctor); err != nil {
		config.Log.Error("Error from InsertOne while creating doctor profile: ", err)
		return nil, err
	}
	invalidateDoctorCaches(c)
	return &doctor, nil
}

/*
* Dropdown listing, filtered by specialty and location, joined with user names
* The cache key covers the filter pair
 */
func FetchDoctors(c *gin.Context, specialtyID, locationID string) ([]models.DoctorInfo, error) {
	filter := bson.M{}
	cacheKey := config.DoctorListKey + specialtyID + ":" + locationID
	if specialtyID != "" {
		id, err := parseObjectID(specialtyID)
		if err != nil {
			return nil, err
		}
		filter["specialtyId"] = id
	}
	if locationID != "" {
		id, err := parseObjectID(locationID)
		if err != nil {
			return nil, err
		}
		filter["locationId"] = id
	}

	var infos []models.DoctorInfo
	hit, err := config.GetCache(c, cacheKey, &infos)
	if err != nil {
		config.Log.Error("Error from GetCache while listing doctors: ", err)
	}
	if hit {
		return infos, nil
	}

	cursor, err := config.OpenCollection(config.DoctorCollection).Find(c, filter)
	if err != nil {
		config.Log.Error("Error from Find while listing doctors: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	doctors := []models.Doctor{}
	if err := cursor.All(c, &doctors); err != nil {
		config.Log.Error("Error decoding doctors: ", err)
		return nil, err
	}

	userIDs := []primitive.ObjectID{}
	for _, d := range doctors {
		userIDs = append(userIDs, d.UserID)
	}
	names := map[primitive.ObjectID]string{}
	if len(userIDs) > 0 {
		userCursor, err := config.OpenCollection(config.UserCollection).Find(c, bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			config.Log.Error("Error from Find while fetching doctor users: ", err)
			return nil, err
		}
		defer userCursor.Close(c)
		users := []models.User{}
		if err := userCursor.All(c, &users); err != nil {
			config.Log.Error("Error decoding doctor users: ", err)
			return nil, err
		}
		for _, u := range users {
			names[u.ID] = u.FullName
		}
	}

	infos = []models.DoctorInfo{}
	for _, d := range doctors {
		infos = append(infos, models.DoctorInfo{
			ID:          d.ID,
			FullName:    names[d.UserID],
			SpecialtyID: d.SpecialtyID,
			LocationID:  d.LocationID,
			Bio:         d.Bio,
			Phone:       d.Phone,
		})
	}
	if err := config.SetCache(c, cacheKey, infos); err != nil {
		config.Log.Error("Error caching doctor list: ", err)
	}
	return infos, nil
}

func UpdateDoctor(c *gin.Context, doctorID string, input DoctorUpdateInput) (*models.Doctor, error) {
	id, err := parseObjectID(doctorID)
	if err != nil {
		return nil, err
	}
	specialtyID, err := parseObjectID(input.SpecialtyID)
	if err != nil {
		return nil, err
	}
	locationID, err := parseObjectID(input.LocationID)
	if err != nil {
		return nil, err
	}
	if err := checkSpecialtyAtLocation(c, specialtyID, locationID); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"specialtyId": specialtyID,
		"locationId":  locationID,
		"bio":         input.Bio,
		"phone":       input.Phone,
		"updatedAt":   time.Now(),
	}}
	result, err := config.OpenCollection(config.DoctorCollection).UpdateOne(c, bson.M{"_id": id}, update)
	if err != nil {
		config.Log.Error("Error from UpdateOne while updating doctor: ", err)
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
	}

	var doctor models.Doctor
	if err := config.OpenCollection(config.DoctorCollection).FindOne(c, bson.M{"_id": id}).Decode(&doctor); err != nil {
		config.Log.Error("Error from FindOne after updating doctor: ", err)
		return nil, err
	}
	invalidateDoctorCaches(c)
	return &doctor, nil
}

/*
* Removes the profile and the identity user behind it
 */
func DeleteDoctor(c *gin.Context, doctorID string) error {
	id, err := parseObjectID(doctorID)
	if err != nil {
		return err
	}

	var doctor models.Doctor
	err = config.OpenCollection(config.DoctorCollection).FindOne(c, bson.M{"_id": id}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return util.NotFound(util.DOCTOR_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching doctor: ", err)
		return err
	}

	if _, err := config.OpenCollection(config.DoctorCollection).DeleteOne(c, bson.M{"_id": id}); err != nil {
		config.Log.Error("Error from DeleteOne while deleting doctor: ", err)
		return err
	}
	if _, err := config.OpenCollection(config.UserCollection).DeleteOne(c, bson.M{"_id": doctor.UserID}); err != nil {
		config.Log.Error("Error from DeleteOne while deleting doctor user: ", err)
		return err
	}
	invalidateDoctorCaches(c)
	return nil
}

/*
* The filter pair is open ended, drop the whole prefix
 */
func invalidateDoctorCaches(c *gin.Context) {
	if config.Rdb == nil {
		return
	}
	iter := config.Rdb.Scan(c, 0, config.DoctorListKey+"*", 100).Iterator()
	keys := []string{}
	for iter.Next(c) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		config.Log.Error("Error scanning doctor cache keys: ", err)
		return
	}
	if err := config.DeleteCache(c, keys...); err != nil {
		config.Log.Error("Failed invalidating doctor caches: ", err)
	}
}
