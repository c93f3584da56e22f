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
)

type LocationInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

/*
* Cached list for the booking dropdown
 */
func FetchAllLocations(c *gin.Context) ([]models.Location, error) {
	var locations []models.Location
	hit, err := config.GetCache(c, config.LocationListKey, &locations)
	if err != nil {
		config.Log.Error("Error from GetCache while listing locations: ", err)
	}
	if hit {
		return locations, nil
	}

	cursor, err := config.OpenCollection(config.LocationCollection).Find(c, bson.M{})
	if err != nil {
		config.Log.Error("Error from Find while listing locations: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	locations = []models.Location{}
	if err := cursor.All(c, &locations); err != nil {
		config.Log.Error("Error decoding locations: ", err)
		return nil, err
	}
	if err := config.SetCache(c, config.LocationListKey, locations); err != nil {
		config.Log.Error("Error caching location list: ", err)
	}
	return locations, nil
}

func CreateLocation(c *gin.Context, input LocationInput) (*models.Location, error) {
	now := time.Now()
	location := models.Location{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := config.OpenCollection(config.LocationCollection).InsertOne(c, location); err != nil {
		config.Log.Error("Error from InsertOne while creating location: ", err)
		return nil, err
	}
	invalidateLocationCaches(c)
	return &location, nil
}

func UpdateLocation(c *gin.Context, locationID string, input LocationInput) (*models.Location, error) {
	id, err := parseObjectID(locationID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"name": input.Name, "address": input.Address, "updatedAt": time.Now()}}
	result, err := config.OpenCollection(config.LocationCollection).UpdateOne(c, bson.M{"_id": id}, update)
	if err != nil {
		config.Log.Error("Error from UpdateOne while updating location: ", err)
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, util.NotFound(util.LOCATION_NOT_FOUND)
	}

	var location models.Location
	if err := config.OpenCollection(config.LocationCollection).FindOne(c, bson.M{"_id": id}).Decode(&location); err != nil {
		config.Log.Error("Error from FindOne after updating location: ", err)
		return nil, err
	}
	invalidateLocationCaches(c)
	return &location, nil
}

/*
* Deleting a location pulls its id out of every specialty in one UpdateMany,
* the specialty side is the only stored reference
 */
func DeleteLocation(c *gin.Context, locationID string) error {
	id, err := parseObjectID(locationID)
	if err != nil {
		return err
	}
	result, err := config.OpenCollection(config.LocationCollection).DeleteOne(c, bson.M{"_id": id})
	if err != nil {
		config.Log.Error("Error from DeleteOne while deleting location: ", err)
		return err
	}
	if result.DeletedCount == 0 {
		return util.NotFound(util.LOCATION_NOT_FOUND)
	}

	if _, err := config.OpenCollection(config.SpecialtyCollection).UpdateMany(
		c,
		bson.M{"locations": id},
		bson.M{"$pull": bson.M{"locations": id}},
	); err != nil {
		config.Log.Error("Error pulling deleted location from specialties: ", err)
		return err
	}
	invalidateLocationCaches(c)
	return nil
}

func fetchLocationByID(c *gin.Context, id primitive.ObjectID) (*models.Location, error) {
	var location models.Location
	err := config.OpenCollection(config.LocationCollection).FindOne(c, bson.M{"_id": id}).Decode(&location)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.LOCATION_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching location: ", err)
		return nil, err
	}
	return &location, nil
}

func invalidateLocationCaches(c *gin.Context) {
	if err := config.DeleteCache(c, config.LocationListKey); err != nil {
		config.Log.Error("Failed invalidating location list cache: ", err)
	}
}
