package migrations

import (
	"context"

	"GuardTrack/config"
)

// Run applies every migration in order. Each step is safe to repeat.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := CreateIndexes(ctx, cfg.LiveLocTTL); err != nil {
		return err
	}
	if _, err := BackfillGuardFields(ctx); err != nil {
		return err
	}
	_, err := SeedAdmin(ctx, AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	return err
}
