package controllers

import (
	"net/http"

	authorization "GuardTrack/config/authorization"
	"GuardTrack/models"
	"GuardTrack/services"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
)

func User(router *gin.RouterGroup, loginLimit gin.HandlerFunc) {
	user := router.Group("/user")
	user.POST("/register", RegisterUser)
	user.POST("/login", loginLimit, LoginUser)
	user.POST("/refresh-token", RefreshUserToken)

	secured := user.Group("", authorization.VerifyJWT(), authorization.Authorize(util.KindUser))
	secured.POST("/logout", LogoutUser)
	secured.GET("/current-user", CurrentUser)
	secured.POST("/change-password", ChangePassword)
	secured.PATCH("/update-account", UpdateAccount)
	secured.PATCH("/avatar", UpdateAvatar)
	secured.GET("/guards", ListApprovedGuards)
	secured.POST("/complain", Complain)
	secured.POST("/appreciate", Appreciate)
}

/*
* Bind the multipart form, the avatar file is optional
* Pass to the service
 */
func RegisterUser(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, validationError(err))
		return
	}
	avatar, err := optionalFile(c, "avatar")
	if err != nil {
		fail(c, err)
		return
	}
	user, err := services.RegisterUser(c.Request.Context(), req, avatar)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "user registered successfully")
}

/*
* Bind JSON, log in and mirror the token pair into cookies
 */
func LoginUser(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, tokens, err := services.LoginUser(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	setTokenCookies(c, tokens)
	respond(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}, "user logged in successfully")
}

func LogoutUser(c *gin.Context) {
	if err := services.Logout(c.Request.Context(), util.KindUser, callerID(c)); err != nil {
		fail(c, err)
		return
	}
	clearTokenCookies(c)
	respond(c, http.StatusOK, gin.H{}, "user logged out")
}

/*
* Rotate the pair. The old refresh token stops working
 */
func RefreshUserToken(c *gin.Context) {
	tokens, err := services.RefreshAccessToken(c.Request.Context(), util.KindUser, incomingRefreshToken(c))
	if err != nil {
		fail(c, err)
		return
	}
	setTokenCookies(c, tokens)
	respond(c, http.StatusOK, tokens, "access token refreshed")
}

func CurrentUser(c *gin.Context) {
	user, err := services.GetUserByID(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user, "current user fetched successfully")
}

func ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := services.ChangePassword(c.Request.Context(), callerID(c), req); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "password changed successfully")
}

func UpdateAccount(c *gin.Context) {
	var req models.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := services.UpdateAccount(c.Request.Context(), callerID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user, "account details updated successfully")
}

func UpdateAvatar(c *gin.Context) {
	avatar, err := c.FormFile("avatar")
	if err != nil {
		fail(c, util.NewApiError(http.StatusBadRequest, util.AVATAR_FILE_MISSING))
		return
	}
	user, err := services.UpdateAvatar(c.Request.Context(), callerID(c), avatar)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, user, "avatar updated successfully")
}

func ListApprovedGuards(c *gin.Context) {
	guards, err := services.ListApprovedGuards(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, guards, "guards fetched successfully")
}

func Complain(c *gin.Context) {
	var req models.ComplainRequest
	if !bindJSON(c, &req) {
		return
	}
	complain, err := services.CreateComplain(c.Request.Context(), callerID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, complain, "complain registered successfully")
}

func Appreciate(c *gin.Context) {
	var req models.AppreciationRequest
	if !bindJSON(c, &req) {
		return
	}
	appreciation, err := services.CreateAppreciation(c.Request.Context(), callerID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, appreciation, "appreciation sent successfully")
}
