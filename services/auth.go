package services

import (
	"strings"
	"time"

	"MediBook/config"
	"MediBook/middleware"
	"MediBook/models"
	"MediBook/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const maxLoginAttempts = 3

type RegisterInput struct {
	FullName       string `json:"fullName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	BirthYear      int    `json:"birthYear"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medicalHistory"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

/*
* Compare the stored hash against the submitted password
 */
func VerifyPassword(dbPassword, inputPassword string) error {
	if strings.TrimSpace(dbPassword) == "" {
		return util.Unauthorized(util.INVALID_CREDENTIALS)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(dbPassword), []byte(inputPassword)); err != nil {
		return util.Unauthorized(util.INVALID_CREDENTIALS)
	}
	return nil
}

/*
* Patient self registration
* Creates the identity user and its patient profile, then signs a token
 */
func Register(c *gin.Context, input RegisterInput) (*AuthResult, error) {
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
		Role:      models.RolePatient,
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
		config.Log.Error("Error from InsertOne while registering user: ", err)
		return nil, err
	}

	patient := models.Patient{
		ID:             primitive.NewObjectID(),
		UserID:         user.ID,
		Address:        input.Address,
		MedicalHistory: input.MedicalHistory,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := config.OpenCollection(config.PatientCollection).InsertOne(c, patient); err != nil {
		config.Log.Error("Error from InsertOne while creating patient profile: ", err)
		return nil, err
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		config.Log.Error("Error generating token: ", err)
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

/*
* Three consecutive failures block the account until an admin resets it
* A successful login clears the counter
 */
func Login(c *gin.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	userColl := config.OpenCollection(config.UserCollection)

	var user models.User
	err := userColl.FindOne(c, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, util.Unauthorized(util.INVALID_CREDENTIALS)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching login user: ", err)
		return nil, err
	}
	if user.IsBlocked {
		return nil, util.Forbidden(util.ACCOUNT_BLOCKED)
	}

	if err := VerifyPassword(user.Password, input.Password); err != nil {
		attempts := user.LoginAttempts + 1
		update := bson.M{"$set": bson.M{"loginAttempts": attempts}}
		if attempts >= maxLoginAttempts {
			update = bson.M{"$set": bson.M{"loginAttempts": attempts, "isBlocked": true}}
		}
		if _, updErr := userColl.UpdateOne(c, bson.M{"_id": user.ID}, update); updErr != nil {
			config.Log.Error("Error updating login attempts: ", updErr)
		}
		if attempts >= maxLoginAttempts {
			return nil, util.Forbidden(util.ACCOUNT_BLOCKED)
		}
		return nil, err
	}

	if user.LoginAttempts > 0 {
		if _, err := userColl.UpdateOne(c, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"loginAttempts": 0}}); err != nil {
			config.Log.Error("Error resetting login attempts: ", err)
		}
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		config.Log.Error("Error generating token: ", err)
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

/*
* The authenticated user's own profile, patient details attached when present
 */
func FetchProfile(c *gin.Context) (map[string]interface{}, error) {
	userID, err := UserIDFromContext(c)
	if err != nil {
		return nil, err
	}
	user, err := fetchUserByID(c, userID)
	if err != nil {
		return nil, err
	}
	profile := map[string]interface{}{"user": user}

	if user.Role == models.RolePatient {
		var patient models.Patient
		err := config.OpenCollection(config.PatientCollection).FindOne(c, bson.M{"userId": userID}).Decode(&patient)
		if err == nil {
			profile["patient"] = patient
		} else if err != mongo.ErrNoDocuments {
			config.Log.Error("Error fetching patient profile: ", err)
		}
	}
	if user.Role == models.RoleDoctor {
		doctor, err := fetchDoctorByUserID(c, userID)
		if err == nil {
			profile["doctor"] = doctor
		}
	}
	return profile, nil
}

type ProfileUpdateInput struct {
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	BirthYear      int    `json:"birthYear"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medicalHistory"`
}

func UpdateProfile(c *gin.Context, input ProfileUpdateInput) error {
	userID, err := UserIDFromContext(c)
	if err != nil {
		return err
	}
	user, err := fetchUserByID(c, userID)
	if err != nil {
		return err
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
	if _, err := config.OpenCollection(config.UserCollection).UpdateOne(c, bson.M{"_id": userID}, bson.M{"$set": fields}); err != nil {
		config.Log.Error("Error from UpdateOne while updating profile: ", err)
		return err
	}

	if user.Role == models.RolePatient && (input.Address != "" || input.MedicalHistory != "") {
		patientFields := bson.M{"updatedAt": time.Now()}
		if input.Address != "" {
			patientFields["address"] = input.Address
		}
		if input.MedicalHistory != "" {
			patientFields["medicalHistory"] = input.MedicalHistory
		}
		if _, err := config.OpenCollection(config.PatientCollection).UpdateOne(c, bson.M{"userId": userID}, bson.M{"$set": patientFields}); err != nil {
			config.Log.Error("Error from UpdateOne while updating patient profile: ", err)
			return err
		}
	}
	return nil
}
