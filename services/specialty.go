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

type SpecialtyInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Locations   []string `json:"locations"`
}

func parseLocationIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for _, r := range raw {
		id, err := parseObjectID(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

/*
* Every referenced location must exist before it lands in the array
 */
func checkLocationsExist(c *gin.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := config.OpenCollection(config.LocationCollection).CountDocuments(c, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		config.Log.Error("Error from CountDocuments while checking locations: ", err)
		return err
	}
	if count != int64(len(ids)) {
		return util.BadRequest(util.LOCATION_NOT_FOUND)
	}
	return nil
}

func FetchAllSpecialties(c *gin.Context) ([]models.Specialty, error) {
	cursor, err := config.OpenCollection(config.SpecialtyCollection).Find(c, bson.M{})
	if err != nil {
		config.Log.Error("Error from Find while listing specialties: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	specialties := []models.Specialty{}
	if err := cursor.All(c, &specialties); err != nil {
		config.Log.Error("Error decoding specialties: ", err)
		return nil, err
	}
	return specialties, nil
}

/*
* Specialties offered at a location, derived from Specialty.locations
* There is no back-reference array on Location to keep in sync
 */
func FetchSpecialtiesByLocation(c *gin.Context, locationID string) ([]models.Specialty, error) {
	id, err := parseObjectID(locationID)
	if err != nil {
		return nil, err
	}

	key := config.SpecialtyLocationKey + id.Hex()
	var specialties []models.Specialty
	hit, err := config.GetCache(c, key, &specialties)
	if err != nil {
		config.Log.Error("Error from GetCache while listing specialties by location: ", err)
	}
	if hit {
		return specialties, nil
	}

	cursor, err := config.OpenCollection(config.SpecialtyCollection).Find(c, bson.M{"locations": id})
	if err != nil {
		config.Log.Error("Error from Find while listing specialties by location: ", err)
		return nil, err
	}
	defer cursor.Close(c)

	specialties = []models.Specialty{}
	if err := cursor.All(c, &specialties); err != nil {
		config.Log.Error("Error decoding specialties by location: ", err)
		return nil, err
	}
	if err := config.SetCache(c, key, specialties); err != nil {
		config.Log.Error("Error caching specialties by location: ", err)
	}
	return specialties, nil
}

func CreateSpecialty(c *gin.Context, input SpecialtyInput) (*models.Specialty, error) {
	locationIDs, err := parseLocationIDs(input.Locations)
	if err != nil {
		return nil, err
	}
	if err := checkLocationsExist(c, locationIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	specialty := models.Specialty{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		Locations:   locationIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := config.OpenCollection(config.SpecialtyCollection).InsertOne(c, specialty); err != nil {
		config.Log.Error("Error from InsertOne while creating specialty: ", err)
		return nil, err
	}
	invalidateSpecialtyCaches(c, locationIDs)
	return &specialty, nil
}

func UpdateSpecialty(c *gin.Context, specialtyID string, input SpecialtyInput) (*models.Specialty, error) {
	id, err := parseObjectID(specialtyID)
	if err != nil {
		return nil, err
	}
	locationIDs, err := parseLocationIDs(input.Locations)
	if err != nil {
		return nil, err
	}
	if err := checkLocationsExist(c, locationIDs); err != nil {
		return nil, err
	}

	var previous models.Specialty
	err = config.OpenCollection(config.SpecialtyCollection).FindOne(c, bson.M{"_id": id}).Decode(&previous)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.SPECIALTY_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching specialty: ", err)
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":        input.Name,
		"description": input.Description,
		"locations":   locationIDs,
		"updatedAt":   time.Now(),
	}}
	if _, err := config.OpenCollection(config.SpecialtyCollection).UpdateOne(c, bson.M{"_id": id}, update); err != nil {
		config.Log.Error("Error from UpdateOne while updating specialty: ", err)
		return nil, err
	}

	var specialty models.Specialty
	if err := config.OpenCollection(config.SpecialtyCollection).FindOne(c, bson.M{"_id": id}).Decode(&specialty); err != nil {
		config.Log.Error("Error from FindOne after updating specialty: ", err)
		return nil, err
	}
	invalidateSpecialtyCaches(c, append(previous.Locations, locationIDs...))
	return &specialty, nil
}

func DeleteSpecialty(c *gin.Context, specialtyID string) error {
	id, err := parseObjectID(specialtyID)
	if err != nil {
		return err
	}

	var specialty models.Specialty
	err = config.OpenCollection(config.SpecialtyCollection).FindOne(c, bson.M{"_id": id}).Decode(&specialty)
	if err == mongo.ErrNoDocuments {
		return util.NotFound(util.SPECIALTY_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching specialty: ", err)
		return err
	}

	if _, err := config.OpenCollection(config.SpecialtyCollection).DeleteOne(c, bson.M{"_id": id}); err != nil {
		config.Log.Error("Error from DeleteOne while deleting specialty: ", err)
		return err
	}
	invalidateSpecialtyCaches(c, specialty.Locations)
	return nil
}

func fetchSpecialtyByID(c *gin.Context, id primitive.ObjectID) (*models.Specialty, error) {
	var specialty models.Specialty
	err := config.OpenCollection(config.SpecialtyCollection).FindOne(c, bson.M{"_id": id}).Decode(&specialty)
	if err == mongo.ErrNoDocuments {
		return nil, util.NotFound(util.SPECIALTY_NOT_FOUND)
	}
	if err != nil {
		config.Log.Error("Error from FindOne while fetching specialty: ", err)
		return nil, err
	}
	return &specialty, nil
}

func invalidateSpecialtyCaches(c *gin.Context, locationIDs []primitive.ObjectID) {
	keys := []string{}
	seen := map[string]bool{}
	for _, id := range locationIDs {
		key := config.SpecialtyLocationKey + id.Hex()
		if !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	if err := config.DeleteCache(c, keys...); err != nil {
		config.Log.Error("Failed invalidating specialty caches: ", err)
	}
}
