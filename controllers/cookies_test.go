package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"GuardTrack/models"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestSetTokenCookies(t *testing.T) {
	t.Cleanup(func() { ConfigureCookies(false, 24*time.Hour, 240*time.Hour) })

	for _, secure := range []bool{false, true} {
		ConfigureCookies(secure, time.Hour, 2*time.Hour)
		c, w := testContext(httptest.NewRequest(http.MethodPost, "/", nil))
		setTokenCookies(c, models.TokenPair{AccessToken: "a", RefreshToken: "r"})

		got := map[string]*http.Cookie{}
		for _, ck := range w.Result().Cookies() {
			got[ck.Name] = ck
		}
		require.Len(t, got, 2)
		access, refresh := got[util.AccessTokenCookie], got[util.RefreshTokenCookie]
		assert.Equal(t, "a", access.Value)
		assert.Equal(t, 3600, access.MaxAge)
		assert.Equal(t, 7200, refresh.MaxAge)
		assert.True(t, access.HttpOnly)
		assert.Equal(t, "/", access.Path)
		assert.Equal(t, secure, access.Secure)
		if secure {
			assert.Equal(t, http.SameSiteNoneMode, refresh.SameSite)
		} else {
			assert.Equal(t, http.SameSiteLaxMode, refresh.SameSite)
		}
	}
}

func TestIncomingRefreshToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"refreshToken":"from-body"}`))
	req.Header.Set("Content-Type", "application/json")
	c, _ := testContext(req)
	assert.Equal(t, "from-body", incomingRefreshToken(c))

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"refreshToken":"from-body"}`))
	req.AddCookie(&http.Cookie{Name: util.RefreshTokenCookie, Value: "from-cookie"})
	c, _ = testContext(req)
	assert.Equal(t, "from-cookie", incomingRefreshToken(c))

	c, _ = testContext(httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Empty(t, incomingRefreshToken(c))
}
