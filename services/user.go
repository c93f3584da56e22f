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

type AdminUserInput struct {
	FullName  string `json:"fullName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"required,oneof=admin patient"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BirthYear int    `json:"birthYear"`
}

type AdminUserUpdateInput struct {
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BirthYear int    `json:"birthYear"`
	IsActive  *bool  `json:"isActive"`
	IsBlocked *bool  `json:"isBlocked"`
}

func FetchAllUsers(c *gin.Context, role string) ([]models.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	cursor, err := config.OpenCollection(config.UserCollection).Find(c, filter)
	if err != nil {
		config.Log.Error("Error from Find while listing users: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	users := []models.User{}
	if err := cursor.All(c, &users); err != nil {
		config.Log.Error("Error decoding users: ", err)
		return nil, err
	}
	return users, nil
}

/*
* Admin-side user creation, admins and patients only
* Doctors go through the doctor endpoint because they need a placement
 */
func CreateUser(c *gin.Context, input AdminUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	userColl := config.OpenCollection(config.UserCollection)

	count, err := userColl.CountDocuments(c, bson.M{"email": email})
	if err != nil {
		config.Log.Error("Error from CountDocuments while checking email: ", err)
		return nil, err
	}
	if count > 0 {
		return nil, util.BadRequest(util.EMAIL_ALREADY_REGISTERED)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		config.Log.Error("Error hashing password: ", err)
		return nil, err
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  strings.TrimSpace(input.FullName),
		Email:     email,
		Password:  hashed,
		Role:      input.Role,
		Phone:     input.Phone,
		Gender:    input.Gender,
		BirthYear: input.BirthYear,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := userColl.InsertOne(c, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, util.BadRequest(util.EMAIL_ALREADY_REGISTERED)
		}
		config.Log.Error("Error from InsertOne while creating user: ", err)
		return nil, err
	}

	if user.Role == models.RolePatient {
		patient := models.Patient{
			ID:        primitive.NewObjectID(),
			UserID:    user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := config.OpenCollection(config.PatientCollection).InsertOne(c, patient); err != nil {
			config.Log.Error("Error from InsertOne while creating patient profile: ", err)
			return nil, err
		}
	}
	return &user, nil
}

/*
* Unblocking clears the attempt counter too
 */
func UpdateUser(c *gin.Context, userID string, input AdminUserUpdateInput) (*models.User, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"updatedAt": time.Now()}
	if input.FullName != "" {
		fields["fullName"] = strings.TrimSpace(input.FullName)
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.Gender != "" {
		fields["gender"] = input.Gender
	}
	if input.BirthYear != 0 {
		fields["birthYear"] = input.BirthYear
	}
	if input.IsActive != nil {
		fields["isActive"] = *input.IsActive
	}
	if input.IsBlocked != nil {
		fields["isBlocked"] = *input.IsBlocked
		if !*input.IsBlocked {
			fields["loginAttempts"] = 0
		}
	}

	result, err := config.OpenCollection(config.UserCollection).UpdateOne(c, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		config.Log.Error("Error from UpdateOne while updating user: ", err)
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, util.NotFound(util.USER_NOT_FOUND)
	}
	return fetchUserByID(c, id)
}

/*
* Deleting a user cascades to its doctor or patient profile
 */
func DeleteUser(c *gin.Context, userID string) error {
	id, err := parseObjectID(userID)
	if err != nil {
		return err
	}
	requesterID, err := UserIDFromContext(c)
	if err != nil {
		return err
	}
	if id == requesterID {
		return util.BadRequest(util.CANNOT_DELETE_SELF)
	}

	user, err := fetchUserByID(c, id)
	if err != nil {
		return err
	}
	if _, err := config.OpenCollection(config.UserCollection).DeleteOne(c, bson.M{"_id": id}); err != nil {
		config.Log.Error("Error from DeleteOne while deleting user: ", err)
		return err
	}

	switch user.Role {
	case models.RoleDoctor:
		if _, err := config.OpenCollection(config.DoctorCollection).DeleteOne(c, bson.M{"userId": id}); err != nil {
			config.Log.Error("Error cascading doctor profile delete: ", err)
			return err
		}
		invalidateDoctorCaches(c)
	case models.RolePatient:
		if _, err := config.OpenCollection(config.PatientCollection).DeleteOne(c, bson.M{"userId": id}); err != nil {
			config.Log.Error("Error cascading patient profile delete: ", err)
			return err
		}
	}
	return nil
}
