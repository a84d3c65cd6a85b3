package controllers

import (
	"net/http"

	authorization "GuardTrack/config/authorization"
	"GuardTrack/models"
	"GuardTrack/role"
	"GuardTrack/services"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
)

// requireAdmin lets through user tokens carrying the admin role. It runs
// after VerifyJWT.
func requireAdmin() gin.HandlerFunc {
	return authorization.Authorize(util.KindUser, role.Admin)
}

func Admin(router *gin.RouterGroup) {
	admin := router.Group("/admin", authorization.VerifyJWT(), requireAdmin())
	admin.GET("/guards", ListGuards)
	admin.GET("/guards/:guardId", GuardDetail)
	admin.PATCH("/guards/:guardId/toggle-approval", ToggleApproval)
	admin.PATCH("/guards/:guardId/work-percent", SetWorkPercent)
	admin.GET("/users", ListUsers)
	admin.GET("/complaints", ListComplaints)
	admin.GET("/appreciations", ListAppreciations)
}

/*
* ?approved=true|false narrows the list, anything else is a 400
 */
func ListGuards(c *gin.Context) {
	guards, err := services.ListGuards(c.Request.Context(), c.Query("approved"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, guards, "guards fetched successfully")
}

func GuardDetail(c *gin.Context) {
	detail, err := services.GetGuardDetail(c.Request.Context(), c.Param("guardId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, detail, "guard fetched successfully")
}

func ToggleApproval(c *gin.Context) {
	guard, err := services.ToggleApproval(c.Request.Context(), c.Param("guardId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, guard, "guard approval updated")
}

func SetWorkPercent(c *gin.Context) {
	var req models.WorkPercentRequest
	if !bindJSON(c, &req) {
		return
	}
	guard, err := services.SetWorkPercent(c.Request.Context(), c.Param("guardId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, guard, "work percent updated")
}

func ListUsers(c *gin.Context) {
	users, err := services.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, users, "users fetched successfully")
}

func ListComplaints(c *gin.Context) {
	items, err := services.ListComplaints(c.Request.Context(), c.Query("guardId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, items, "complaints fetched successfully")
}

func ListAppreciations(c *gin.Context) {
	items, err := services.ListAppreciations(c.Request.Context(), c.Query("guardId"))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, items, "appreciations fetched successfully")
}
