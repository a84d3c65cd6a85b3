package jobs

import (
	"context"
	"time"

	"GuardTrack/config/ratelimit"
	"GuardTrack/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// WorkRollUpSpec runs every day at 00:05 AM
	WorkRollUpSpec = "5 0 * * *"
	// LimiterSweepSpec drops idle login buckets
	LimiterSweepSpec = "@every 5m"
)

var rollUpTimeout = 5 * time.Minute

/*
* Register the daily work roll-up and the limiter sweep, start the cron
* runner and return it so the caller can stop it on shutdown
 */
func StartDailyScheduler(limiter *ratelimit.Limiter) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(WorkRollUpSpec, func() {
		zap.L().Info("running daily work roll-up")
		RunWorkRollUp(time.Now().UTC())
	}); err != nil {
		return nil, err
	}

	if limiter != nil {
		if _, err := c.AddFunc(LimiterSweepSpec, func() {
			limiter.Sweep(time.Now())
		}); err != nil {
			return nil, err
		}
	}

	c.Start()
	return c, nil
}

// RunWorkRollUp rolls up the day before now.
func RunWorkRollUp(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), rollUpTimeout)
	defer cancel()

	day := now.AddDate(0, 0, -1)
	updated, err := services.RollUpWork(ctx, day)
	if err != nil {
		zap.L().Error("work roll-up failed", zap.Time("day", day), zap.Int("updated", updated), zap.Error(err))
	}
}
