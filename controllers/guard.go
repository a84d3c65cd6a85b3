package controllers

import (
	"net/http"

	authorization "GuardTrack/config/authorization"
	"GuardTrack/models"
	"GuardTrack/services"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
)

func Guard(router *gin.RouterGroup, loginLimit gin.HandlerFunc) {
	guard := router.Group("/guard")
	guard.POST("/register", RegisterGuard)
	guard.POST("/login", loginLimit, LoginGuard)
	guard.POST("/refresh-token", RefreshGuardToken)

	secured := guard.Group("", authorization.VerifyJWT(), authorization.Authorize(util.KindGuard))
	secured.POST("/logout", LogoutGuard)
	secured.GET("/current-guard", CurrentGuard)
	secured.GET("/location", OwnLocation)
	secured.GET("/complaints", OwnComplaints)
	secured.GET("/appreciations", OwnAppreciations)
	secured.GET("/work-history", WorkHistory)
}

func RegisterGuard(c *gin.Context) {
	var req models.RegisterGuardRequest
	if !bindJSON(c, &req) {
		return
	}
	guard, err := services.RegisterGuard(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, guard, "guard registered successfully, waiting for approval")
}

/*
* Same as the user login, but only approved guards get tokens
 */
func LoginGuard(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	guard, tokens, err := services.LoginGuard(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	setTokenCookies(c, tokens)
	respond(c, http.StatusOK, gin.H{
		"guard":        guard,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}, "guard logged in successfully")
}

func LogoutGuard(c *gin.Context) {
	if err := services.Logout(c.Request.Context(), util.KindGuard, callerID(c)); err != nil {
		fail(c, err)
		return
	}
	clearTokenCookies(c)
	respond(c, http.StatusOK, gin.H{}, "guard logged out")
}

func RefreshGuardToken(c *gin.Context) {
	tokens, err := services.RefreshAccessToken(c.Request.Context(), util.KindGuard, incomingRefreshToken(c))
	if err != nil {
		fail(c, err)
		return
	}
	setTokenCookies(c, tokens)
	respond(c, http.StatusOK, tokens, "access token refreshed")
}

func CurrentGuard(c *gin.Context) {
	guard, err := services.GetGuardByID(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, guard, "current guard fetched successfully")
}

func OwnLocation(c *gin.Context) {
	loc, err := services.GetLocationByGuard(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, loc, "location fetched successfully")
}

func OwnComplaints(c *gin.Context) {
	items, err := services.ListComplaints(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, items, "complaints fetched successfully")
}

func OwnAppreciations(c *gin.Context) {
	items, err := services.ListAppreciations(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, items, "appreciations fetched successfully")
}

func WorkHistory(c *gin.Context) {
	history, err := services.GetWorkHistory(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, history, "work history fetched successfully")
}
