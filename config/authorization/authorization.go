package authorization

import (
	"net/http"
	"strings"

	jwt "GuardTrack/config/jwt"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys set on the gin context by VerifyJWT.
const (
	CtxID       = "_id"
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRole     = "role"
	CtxKind     = "kind"
)

/*
* Read the access token from the accessToken cookie, falling back to the
* Authorization header, verify it and expose the claims on the context
 */
func VerifyJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, util.NewApiError(http.StatusUnauthorized, util.UNAUTHORIZED_REQUEST))
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			zap.L().Debug("rejecting access token", zap.Error(err), zap.String("path", c.FullPath()))
			abort(c, util.NewApiError(http.StatusUnauthorized, util.INVALID_ACCESS_TOKEN))
			return
		}
		c.Set(CtxID, claims.ID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxKind, claims.Kind)
		c.Next()
	}
}

/*
* Only lets through callers of the given kind. When roles are given the
* caller's role must be one of them too
 */
func Authorize(kind string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxKind) != kind {
			abort(c, util.NewApiError(http.StatusForbidden, util.FORBIDDEN_ROLE))
			return
		}
		if len(roles) > 0 && !contains(roles, c.GetString(CtxRole)) {
			abort(c, util.NewApiError(http.StatusForbidden, util.FORBIDDEN_ROLE))
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(util.AccessTokenCookie); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token)
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func abort(c *gin.Context, err *util.ApiError) {
	_ = c.Error(err)
	c.Abort()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
