package services

import (
	"MediBook/config"
	"MediBook/models"
	"MediBook/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func parseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, util.BadRequest(util.INVALID_OBJECT_ID)
	}
	return id, nil
}

/*
* The auth middleware stores the hex id, services want the ObjectID
 */
func UserIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	raw := c.GetString("userId")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		config.Log.Error("Error parsing userId from context: ", err)
		return primitive.NilObjectID, util.Unauthorized(util.INVALID_TOKEN)
	}
	return id, nil
}

func fetchUserByID(c *gin.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := config.OpenCollection(config.UserCollection).FindOne(c, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.USER_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching user: ", err)
		return nil, err
	}
	return &user, nil
}

/*
* The doctor profile for the authenticated doctor user
 */
func fetchDoctorByUserID(c *gin.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	var doctor models.Doctor
	err := config.OpenCollection(config.DoctorCollection).FindOne(c, bson.M{"userId": userID}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.DOCTOR_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching doctor profile: ", err)
		return nil, err
	}
	return &doctor, nil
}
