package services

import "GuardTrack/config"

// Configure applies the tunables the services read at request time.
func Configure(cfg *config.Config) {
	if cfg.ZoneRadius > 0 {
		DefaultRadius = cfg.ZoneRadius
	}
	if cfg.LiveLocTTL > 0 {
		LiveLocTTL = cfg.LiveLocTTL
	}
}
