package controllers

import (
	"net/http"

	"GuardTrack/services"

	"github.com/gin-gonic/gin"
)

func Healthcheck(router *gin.RouterGroup) {
	router.GET("/healthcheck", Health)
}

func Health(c *gin.Context) {
	report := services.Health(c.Request.Context())
	if !report.Healthy() {
		respond(c, http.StatusServiceUnavailable, report, "service unavailable")
		return
	}
	respond(c, http.StatusOK, report, "ok")
}
