package routes

import (
	"GuardTrack/config"
	"GuardTrack/config/ratelimit"
	"GuardTrack/controllers"
	"GuardTrack/services"

	"github.com/gin-gonic/gin"
)

/*
* Mount every API group under /api/v1. Login routes share one per-IP
* limiter
 */
func Routes(r *gin.Engine, cfg *config.Config, loginLimiter *ratelimit.Limiter) {
	services.Configure(cfg)
	controllers.ConfigureCookies(cfg.CookieSecure, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)

	api := r.Group("/api/v1")

	//public
	controllers.Healthcheck(api)

	//user and guard sessions
	controllers.User(api, loginLimiter.Middleware())
	controllers.Guard(api, loginLimiter.Middleware())

	//admin
	controllers.Admin(api)
	controllers.Location(api)
	controllers.LiveLocation(api)
}
