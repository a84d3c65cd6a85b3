package migrations

import (
	"context"
	"fmt"

	db "GuardTrack/config/db"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

/*
* Guards created before the work tracking fields existed get their
* defaults, one field at a time so present values are never touched
 */
func BackfillGuardFields(ctx context.Context) (int64, error) {
	defaults := []struct {
		field string
		value interface{}
	}{
		{"isApproved", false},
		{"workPercent", 0},
		{"workHistory", bson.A{}},
	}

	coll := db.OpenCollections(util.GuardCollection)
	var total int64
	for _, d := range defaults {
		result, err := coll.UpdateMany(ctx,
			bson.M{d.field: bson.M{"$exists": false}},
			bson.M{"$set": bson.M{d.field: d.value}},
		)
		if err != nil {
			return total, fmt.Errorf("backfill %s: %w", d.field, err)
		}
		total += result.ModifiedCount
	}
	zap.L().Info("guard fields backfilled", zap.Int64("modified", total))
	return total, nil
}
