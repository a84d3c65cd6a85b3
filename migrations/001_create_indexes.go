package migrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	db "GuardTrack/config/db"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var livePingKeys = bson.D{{Key: "recordedAt", Value: 1}}

func desiredIndexes() map[string][]mongo.IndexModel {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_" + field),
		}
	}
	byGuard := mongo.IndexModel{
		Keys:    bson.D{{Key: "guard", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("guard_createdAt"),
	}
	return map[string][]mongo.IndexModel{
		util.UserCollection:  {unique("username"), unique("email")},
		util.GuardCollection: {unique("username"), unique("email"), {
			Keys:    bson.D{{Key: "isApproved", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("isApproved_createdAt"),
		}},
		util.LocationCollection:     {unique("guard")},
		util.ComplainCollection:     {byGuard},
		util.AppreciationCollection: {byGuard},
		util.LivePingCollection: {{
			Keys:    bson.D{{Key: "guard", Value: 1}, {Key: "recordedAt", Value: -1}},
			Options: options.Index().SetName("guard_recordedAt"),
		}},
	}
}

/*
* Create every index the queries rely on. Each create is idempotent and
* problems are collected so startup fails with the full list
 */
func CreateIndexes(ctx context.Context, liveLocTTL time.Duration) error {
	var problems []string
	for coll, models := range desiredIndexes() {
		if _, err := db.OpenCollections(coll).Indexes().CreateMany(ctx, models); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}
	if err := ensureLivePingTTL(ctx, liveLocTTL); err != nil {
		problems = append(problems, util.LivePingCollection+" ttl: "+err.Error())
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	zap.L().Info("indexes ensured")
	return nil
}

/*
* Live pings expire after the retention window. When the window changed
* since the index was built, collMod updates it in place
 */
func ensureLivePingTTL(ctx context.Context, ttl time.Duration) error {
	seconds := int32(ttl / time.Second)
	if seconds <= 0 {
		return fmt.Errorf("retention must be at least one second, got %s", ttl)
	}
	model := mongo.IndexModel{
		Keys:    livePingKeys,
		Options: options.Index().SetName("ttl_recordedAt").SetExpireAfterSeconds(seconds),
	}
	_, err := db.OpenCollections(util.LivePingCollection).Indexes().CreateOne(ctx, model)
	if err == nil || !isOptionsConflict(err) {
		return err
	}
	return db.DB.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: util.LivePingCollection},
		{Key: "index", Value: bson.D{
			{Key: "keyPattern", Value: livePingKeys},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	}).Err()
}

func isOptionsConflict(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 85 || ce.Name == "IndexOptionsConflict") {
		return true
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}
