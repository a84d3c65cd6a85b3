package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	db "GuardTrack/config/db"
	"GuardTrack/models"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultRadius is used when an assignment does not carry its own radius.
var DefaultRadius = 100.0

/*
* A guard holds at most one location. Assigning again moves the guard:
* the document is upserted on the guard reference
 */
func AssignLocation(ctx context.Context, adminID string, req models.AssignLocationRequest) (*models.Location, error) {
	guardID, err := parseObjectID(req.GuardID)
	if err != nil {
		return nil, err
	}
	coords, err := coordinatesFrom(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	radius := req.Radius
	if radius == 0 {
		radius = DefaultRadius
	}
	if radius < 0 {
		return nil, badRequest(util.INVALID_RADIUS)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, badRequest(util.ALL_FIELDS_REQUIRED, "name")
	}
	assignedBy, err := parseObjectID(adminID)
	if err != nil {
		return nil, err
	}

	guard, err := findGuard(ctx, guardID)
	if err != nil {
		return nil, err
	}
	if !guard.IsApproved {
		return nil, badRequest(util.GUARD_NOT_APPROVED_FOR_LOCATION)
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":        name,
			"coordinates": coords,
			"radius":      radius,
			"assignedBy":  assignedBy,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"guard":     guardID,
			"createdAt": now,
		},
	}
	loc := &models.Location{}
	err = db.FindOneAndUpdate(ctx, db.OpenCollections(util.LocationCollection), bson.M{"guard": guardID}, update, loc, true)
	if err != nil {
		return nil, fmt.Errorf("assign location: %w", err)
	}
	invalidateGuard(ctx, guardID)
	zap.L().Info("location assigned",
		zap.String("guard", guardID.Hex()),
		zap.String("name", name),
		zap.Float64("latitude", coords.Latitude),
		zap.Float64("longitude", coords.Longitude))
	return loc, nil
}

func ListLocations(ctx context.Context) ([]models.LocationWithGuard, error) {
	locations := []models.LocationWithGuard{}
	err := db.Aggregate(ctx, db.OpenCollections(util.LocationCollection), locationsWithGuardPipeline(bson.M{}), &locations)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func GetLocationByGuard(ctx context.Context, guardID string) (*models.Location, error) {
	oid, err := parseObjectID(guardID)
	if err != nil {
		return nil, err
	}
	return findLocation(ctx, oid)
}

func findLocation(ctx context.Context, guardID primitive.ObjectID) (*models.Location, error) {
	loc := &models.Location{}
	err := db.FindOne(ctx, db.OpenCollections(util.LocationCollection), bson.M{"guard": guardID}, loc)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, util.LOCATION_NOT_ASSIGNED)
		}
		return nil, fmt.Errorf("find location: %w", err)
	}
	return loc, nil
}
