package services

import (
	"context"
	"errors"
	"time"

	db "GuardTrack/config/db"
	redis "GuardTrack/config/redis"

	"golang.org/x/sync/errgroup"
)

const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

type HealthReport struct {
	Mongo string    `json:"mongo"`
	Redis string    `json:"redis"`
	Time  time.Time `json:"time"`
}

// Healthy is false only when mongo is unreachable; the cache is optional.
func (h HealthReport) Healthy() bool {
	return h.Mongo == StatusUp
}

/*
* Ping mongo and redis concurrently, each bounded by its own timeout
 */
func Health(ctx context.Context) HealthReport {
	report := HealthReport{Time: time.Now().UTC()}

	var g errgroup.Group
	g.Go(func() error {
		report.Mongo = probe(ctx, db.Ping, nil)
		return nil
	})
	g.Go(func() error {
		report.Redis = probe(ctx, redis.Ping, redis.ErrCacheDisabled)
		return nil
	})
	_ = g.Wait()
	return report
}

func probe(ctx context.Context, ping func(context.Context) error, disabled error) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err := ping(ctx)
	switch {
	case err == nil:
		return StatusUp
	case disabled != nil && errors.Is(err, disabled):
		return StatusDisabled
	default:
		return StatusDown
	}
}
