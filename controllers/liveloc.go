package controllers

import (
	"net/http"

	authorization "GuardTrack/config/authorization"
	"GuardTrack/models"
	"GuardTrack/services"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
)

func LiveLocation(router *gin.RouterGroup) {
	live := router.Group("/liveloc", authorization.VerifyJWT())
	live.POST("", authorization.Authorize(util.KindGuard), RecordPing)
	live.GET("", requireAdmin(), LatestPings)
	live.GET("/:guardId", requireAdmin(), LatestPing)
}

func RecordPing(c *gin.Context) {
	var req models.LivePingRequest
	if !bindJSON(c, &req) {
		return
	}
	ping, err := services.RecordPing(c.Request.Context(), callerID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, ping, "live location recorded")
}

func LatestPings(c *gin.Context) {
	pings, err := services.LatestPings(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, pings, "live locations fetched successfully")
}

func LatestPing(c *gin.Context) {
	ping, err := services.LatestPing(c.Request.Context(), c.Param("guardId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, ping, "live location fetched successfully")
}
