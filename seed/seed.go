package seed

import (
	"context"
	"time"

	"MediBook/config"
	"MediBook/models"
	"MediBook/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
* Idempotent bootstrap admin from the environment
* Count first, insert only when the email is absent
 */
func EnsureAdmin(ctx context.Context) {
	email := config.Getenv("ADMIN_EMAIL", "admin@medibook.local")
	password := config.Getenv("ADMIN_PASSWORD", "")
	if password == "" {
		config.Log.Info("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	coll := config.OpenCollection(config.UserCollection)
	count, err := coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		config.Log.Error("Error checking seed admin: ", err)
		return
	}
	if count > 0 {
		return
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		config.Log.Error("Error hashing seed admin password: ", err)
		return
	}

	now := time.Now()
	admin := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  "Administrator",
		Email:     email,
		Password:  hashed,
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := coll.InsertOne(ctx, admin); err != nil {
		config.Log.Error("Error inserting seed admin: ", err)
		return
	}
	config.Log.Info("Seeded bootstrap admin: ", email)
}
