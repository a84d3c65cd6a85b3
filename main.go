package main

import (
	"context"
	"log"
	"net/http"

	"GuardTrack/config"
	"GuardTrack/config/ratelimit"
	"GuardTrack/jobs"
	"GuardTrack/migrations"
	"GuardTrack/routes"
	"GuardTrack/server"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	startServer = server.Start
	isTest      = false
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file loaded, using the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	loginLimiter := ratelimit.New(cfg.LoginRate, cfg.LoginBurst)

	defaultopts := server.GetDefaultOptions()

	options := server.Options{
		Config:           cfg,
		CacheEnabled:     defaultopts.CacheEnabled,
		MongoEnabled:     defaultopts.MongoEnabled,
		MediaEnabled:     defaultopts.MediaEnabled,
		WebServerEnabled: defaultopts.WebServerEnabled,
		WebServerPort:    defaultopts.WebServerPort,

		JobsEnabled: !isTest,
		JobsHandler: func() {
			if isTest {
				return
			}
			if _, err := jobs.StartDailyScheduler(loginLimiter); err != nil {
				zap.L().Error("scheduler not started", zap.Error(err))
			}
		},

		MigrationEnabled: !isTest,
		MigrationHandler: func(ctx context.Context) error {
			if isTest {
				return nil
			}
			return migrations.Run(ctx, cfg)
		},

		WebServerPreHandler: func(r *gin.Engine) {
			r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
			routes.Routes(r, cfg, loginLimiter)
		},
	}
	return startServer(options)
}

/*
* Cookies only travel cross-origin with credentials, which browsers refuse
* together with a wildcard origin. A "*" therefore echoes the caller's origin
 */
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowOriginFunc = func(string) bool { return true }
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
