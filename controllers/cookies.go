package controllers

import (
	"net/http"
	"time"

	"GuardTrack/models"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
)

type cookieSettings struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

var cookies = cookieSettings{
	accessTTL:  24 * time.Hour,
	refreshTTL: 240 * time.Hour,
}

// ConfigureCookies sets the Secure flag and lifetimes of the token cookies.
func ConfigureCookies(secure bool, accessTTL, refreshTTL time.Duration) {
	cookies = cookieSettings{secure: secure, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func newCookie(name, value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cookies.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if cookies.secure {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

func setTokenCookies(c *gin.Context, tokens models.TokenPair) {
	http.SetCookie(c.Writer, newCookie(util.AccessTokenCookie, tokens.AccessToken, int(cookies.accessTTL.Seconds())))
	http.SetCookie(c.Writer, newCookie(util.RefreshTokenCookie, tokens.RefreshToken, int(cookies.refreshTTL.Seconds())))
}

func clearTokenCookies(c *gin.Context) {
	http.SetCookie(c.Writer, newCookie(util.AccessTokenCookie, "", -1))
	http.SetCookie(c.Writer, newCookie(util.RefreshTokenCookie, "", -1))
}

/*
* The refresh token comes from its cookie, or from the body for clients
* that cannot keep cookies
 */
func incomingRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(util.RefreshTokenCookie); err == nil && token != "" {
		return token
	}
	var body models.RefreshRequest
	if c.Request.ContentLength != 0 {
		_ = c.ShouldBindJSON(&body)
	}
	return body.RefreshToken
}
