package services

import (
	"context"
	"fmt"
	"math"
	"time"

	db "GuardTrack/config/db"
	"GuardTrack/models"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type dailyWork struct {
	Guard  primitive.ObjectID `bson:"_id"`
	Total  int                `bson:"total"`
	Within int                `bson:"within"`
}

// WorkPercent is the rounded share of pings sent from inside the zone.
func WorkPercent(within, total int) int {
	if total <= 0 {
		return 0
	}
	if within > total {
		within = total
	}
	return int(math.Round(float64(within) * 100 / float64(total)))
}

// DayBounds returns the UTC midnight that starts day and the next one.
func DayBounds(day time.Time) (time.Time, time.Time) {
	day = day.UTC()
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

/*
* Aggregate the pings of the given day per guard and append the result to
* each guard's work history. Guards that sent nothing get no entry
 */
func RollUpWork(ctx context.Context, day time.Time) (int, error) {
	from, to := DayBounds(day)

	rows := []dailyWork{}
	if err := db.Aggregate(ctx, db.OpenCollections(util.LivePingCollection), dailyWorkPipeline(from, to), &rows); err != nil {
		return 0, fmt.Errorf("aggregate pings: %w", err)
	}

	guards := db.OpenCollections(util.GuardCollection)
	updated := 0
	for _, row := range rows {
		entry := models.WorkEntry{
			Date:    from,
			Percent: WorkPercent(row.Within, row.Total),
			Pings:   row.Total,
		}
		// the date filter keeps a rerun for the same day from adding twice
		res, err := db.UpdateOne(ctx, guards,
			bson.M{"_id": row.Guard, "workHistory.date": bson.M{"$ne": from}},
			bson.M{
				"$push": bson.M{"workHistory": entry},
				"$set":  bson.M{"workPercent": entry.Percent, "updatedAt": time.Now().UTC()},
			})
		if err != nil {
			return updated, fmt.Errorf("update work of %s: %w", row.Guard.Hex(), err)
		}
		if res.ModifiedCount > 0 {
			updated++
			invalidateGuard(ctx, row.Guard)
		}
	}
	zap.L().Info("work rolled up",
		zap.Time("day", from),
		zap.Int("guards", len(rows)),
		zap.Int("updated", updated))
	return updated, nil
}
