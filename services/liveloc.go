package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	db "GuardTrack/config/db"
	redis "GuardTrack/config/redis"
	"GuardTrack/metrics"
	"GuardTrack/models"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// LiveLocTTL bounds how long the latest ping stays cached.
var LiveLocTTL = 168 * time.Hour

// evaluatePing measures how far the guard is from the assigned point.
func evaluatePing(loc *models.Location, at models.Coordinates) (float64, bool) {
	distance := DistanceMeters(loc.Coordinates, at)
	return distance, distance <= loc.Radius
}

/*
* Record one position report. The guard must still be approved and have a
* location, the ping is measured against it, stored in mongo and cached
* as the guard's latest
 */
func RecordPing(ctx context.Context, guardID string, req models.LivePingRequest) (*models.LivePing, error) {
	oid, err := parseObjectID(guardID)
	if err != nil {
		return nil, err
	}
	coords, err := coordinatesFrom(req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	// approval can be revoked while an access token is still live
	guard, err := findGuard(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !guard.IsApproved {
		return nil, util.NewApiError(http.StatusForbidden, util.GUARD_NOT_APPROVED)
	}
	loc, err := findLocation(ctx, oid)
	if err != nil {
		return nil, err
	}

	distance, within := evaluatePing(loc, coords)
	ping := models.LivePing{
		ID:          primitive.NewObjectID(),
		Guard:       oid,
		Coordinates: coords,
		WithinZone:  within,
		Distance:    distance,
		RecordedAt:  time.Now().UTC(),
	}
	if _, err := db.CreateOne(ctx, db.OpenCollections(util.LivePingCollection), ping); err != nil {
		return nil, fmt.Errorf("insert live ping: %w", err)
	}
	metrics.LivePings.WithLabelValues(strconv.FormatBool(within)).Inc()

	if err := redis.SetCacheWithTTL(ctx, util.LiveLocKey+oid.Hex(), ping, LiveLocTTL); err != nil {
		zap.L().Debug("live location not cached", zap.String("guard", oid.Hex()), zap.Error(err))
	}
	if !within {
		zap.L().Info("guard outside assigned zone",
			zap.String("guard", oid.Hex()),
			zap.Float64("distance", distance),
			zap.Float64("radius", loc.Radius))
	}
	return &ping, nil
}

func LatestPing(ctx context.Context, guardID string) (*models.LivePing, error) {
	oid, err := parseObjectID(guardID)
	if err != nil {
		return nil, err
	}

	ping := &models.LivePing{}
	if exists, err := redis.GetCache(ctx, util.LiveLocKey+oid.Hex(), ping); exists && err == nil {
		return ping, nil
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "recordedAt", Value: -1}, {Key: "_id", Value: -1}})
	err = db.FindOne(ctx, db.OpenCollections(util.LivePingCollection), bson.M{"guard": oid}, ping, opts)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, util.NewApiError(http.StatusNotFound, util.LIVE_LOCATION_NOT_FOUND)
		}
		return nil, fmt.Errorf("find live ping: %w", err)
	}
	return ping, nil
}

func LatestPings(ctx context.Context) ([]models.LivePing, error) {
	pings := []models.LivePing{}
	if err := db.Aggregate(ctx, db.OpenCollections(util.LivePingCollection), latestPingsPipeline(), &pings); err != nil {
		return nil, fmt.Errorf("latest pings: %w", err)
	}
	return pings, nil
}
