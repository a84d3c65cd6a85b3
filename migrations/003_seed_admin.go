package migrations

import (
	"context"
	"fmt"
	"strings"
	"time"

	db "GuardTrack/config/db"
	"GuardTrack/models"
	"GuardTrack/role"
	"GuardTrack/services"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type AdminSeed struct {
	Username string
	Email    string
	Password string
}

/*
* Create the admin account when credentials are configured and neither
* the username nor the email is taken. Returns whether a user was created
 */
func SeedAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	username := strings.ToLower(strings.TrimSpace(seed.Username))
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if username == "" || email == "" || seed.Password == "" {
		return false, nil
	}

	coll := db.OpenCollections(util.UserCollection)
	n, err := db.Count(ctx, coll, bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"email": email},
	}})
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	hashed, err := services.HashPassword(seed.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now().UTC()
	admin := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		FullName:  "Administrator",
		Password:  hashed,
		Role:      role.Admin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.CreateOne(ctx, coll, admin); err != nil {
		if db.IsDuplicate(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert admin: %w", err)
	}
	zap.L().Info("admin user seeded", zap.String("username", username))
	return true, nil
}
