package controllers

import (
	"net/http"

	authorization "GuardTrack/config/authorization"
	"GuardTrack/models"
	"GuardTrack/services"

	"github.com/gin-gonic/gin"
)

func Location(router *gin.RouterGroup) {
	location := router.Group("/location", authorization.VerifyJWT(), requireAdmin())
	location.POST("/assign", AssignLocation)
	location.GET("", ListLocations)
	location.GET("/:guardId", GuardLocation)
}

func AssignLocation(c *gin.Context) {
	var req models.AssignLocationRequest
	if !bindJSON(c, &req) {
		return
	}
	loc, err := services.AssignLocation(c.Request.Context(), callerID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, loc, "location assigned successfully")
}

func ListLocations(c *gin.Context) {
	locations, err := services.ListLocations(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, locations, "locations fetched successfully")
}

func GuardLocation(c *gin.Context) {
	loc, err := services.GetLocationByGuard(c.Request.Context(), c.Param("guardId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, loc, "location fetched successfully")
}
