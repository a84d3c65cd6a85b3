package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"GuardTrack/config"
	db "GuardTrack/config/db"
	"GuardTrack/controllers"
	"GuardTrack/server"
	"GuardTrack/testutil"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func passThrough(c *gin.Context) { c.Next() }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	testutil.SetupJWT(t)
	r := server.NewEngine(&config.Config{GinMode: gin.TestMode})
	api := r.Group("/api/v1")
	controllers.User(api, passThrough)
	controllers.Guard(api, passThrough)
	controllers.Admin(api)
	controllers.Location(api)
	controllers.LiveLocation(api)
	controllers.Healthcheck(api)
	return r
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) util.ApiError {
	t.Helper()
	var body util.ApiError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_InvalidBody(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.False(t, body.Success)
}

func TestLogin_MissingIdentity(t *testing.T) {
	r := newRouter(t)
	w := serve(r, jsonRequest(http.MethodPost, "/api/v1/guard/login", map[string]string{"password": "x"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.USERNAME_OR_EMAIL_REQUIRED, decodeError(t, w).Message)
}

func TestRegisterUser_MissingFields(t *testing.T) {
	r := newRouter(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "alice"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, util.ALL_FIELDS_REQUIRED, body.Message)
	assert.Equal(t, []string{"email", "fullName", "password"}, body.Errors)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	r := newRouter(t)

	form := func(fields map[string]string) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/user/register", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	w := serve(r, form(map[string]string{
		"username": "alice", "email": "alice-at-mail", "fullName": "Alice", "password": "secret123",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, util.INVALID_EMAIL, body.Message)
	assert.Equal(t, []string{"email"}, body.Errors)

	w = serve(r, form(map[string]string{
		"username": "alice", "email": "alice@mail.com", "fullName": "Alice", "password": "123",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.PASSWORD_TOO_SHORT, decodeError(t, w).Message)

	// the avatar part is cut off before its closing boundary
	truncated := "--xyz\r\n" +
		"Content-Disposition: form-data; name=\"avatar\"; filename=\"a.png\"\r\n\r\n" +
		"\x89PNG"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/register", bytes.NewBufferString(truncated))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, decodeError(t, w).Status)
}

func TestSecuredRoutes(t *testing.T) {
	r := newRouter(t)

	cases := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"no token", httptest.NewRequest(http.MethodGet, "/api/v1/user/current-user", nil), http.StatusUnauthorized},
		{"garbage bearer", func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/user/current-user", nil)
			req.Header.Set("Authorization", "Bearer nope")
			return req
		}(), http.StatusUnauthorized},
		{"guard on user route", testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/v1/user/guards", testutil.GuardAccount()), http.StatusForbidden},
		{"user on guard route", testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/v1/guard/location", testutil.UserAccount()), http.StatusForbidden},
		{"user on admin route", testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/v1/admin/users", testutil.UserAccount()), http.StatusForbidden},
		{"user on liveloc list", testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/v1/liveloc", testutil.UserAccount()), http.StatusForbidden},
		{"admin posting a ping", testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/v1/liveloc", testutil.AdminAccount()), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, tc.req)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.status, decodeError(t, w).Status)
		})
	}
}

func TestAdmin_Validation(t *testing.T) {
	r := newRouter(t)
	admin := testutil.AdminAccount()

	req := testutil.WithAccount(t, jsonRequest(http.MethodPost, "/api/v1/location/assign", map[string]interface{}{
		"guardId": "not-an-id", "name": "Gate", "latitude": 1, "longitude": 2,
	}), admin)
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.INVALID_OBJECT_ID, decodeError(t, w).Message)

	req = testutil.WithAccount(t, jsonRequest(http.MethodPatch, "/api/v1/admin/guards/64b7f0c2a1b2c3d4e5f60718/work-percent", map[string]int{"workPercent": 101}), admin)
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.INVALID_WORK_PERCENT, decodeError(t, w).Message)

	req = testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/v1/admin/guards?approved=maybe", admin)
	w = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh_WithoutToken(t *testing.T) {
	r := newRouter(t)
	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/v1/user/refresh-token", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, util.UNAUTHORIZED_REQUEST, decodeError(t, w).Message)
}

func TestHealthcheck_MongoDown(t *testing.T) {
	r := newRouter(t)
	prevClient, prevDB := db.Client, db.DB
	db.Client, db.DB = nil, nil
	t.Cleanup(func() { db.Client, db.DB = prevClient, prevDB })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Mongo string `json:"mongo"`
			Redis string `json:"redis"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "down", body.Data.Mongo)
	assert.Equal(t, "disabled", body.Data.Redis)
}

func TestUserSession_RefreshRotatesCookies(t *testing.T) {
	testutil.SetupTestDB(t)
	r := newRouter(t)
	controllers.ConfigureCookies(true, time.Hour, 24*time.Hour)
	t.Cleanup(func() { controllers.ConfigureCookies(false, 24*time.Hour, 240*time.Hour) })

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"username": "nora", "email": "nora@mail.com", "fullName": "Nora", "password": "secret123",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := serve(r, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = serve(r, jsonRequest(http.MethodPost, "/api/v1/user/login", map[string]string{"username": "nora", "password": "wrong-one"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, jsonRequest(http.MethodPost, "/api/v1/user/login", map[string]string{"username": "nora", "password": "secret123"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	access := cookieNamed(w, util.AccessTokenCookie)
	refresh := cookieNamed(w, util.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/user/refresh-token", nil)
	req.AddCookie(refresh)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rotated := cookieNamed(w, util.RefreshTokenCookie)
	require.NotNil(t, rotated)
	assert.NotEqual(t, refresh.Value, rotated.Value)
	newAccess := cookieNamed(w, util.AccessTokenCookie)
	require.NotNil(t, newAccess)

	// the old cookie is spent after rotation
	req = httptest.NewRequest(http.MethodPost, "/api/v1/user/refresh-token", nil)
	req.AddCookie(refresh)
	w = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, util.REFRESH_TOKEN_EXPIRED_OR_USED, decodeError(t, w).Message)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/user/current-user", nil)
	req.AddCookie(newAccess)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"nora"`)

	n, err := db.Count(context.Background(), db.OpenCollections(util.UserCollection), bson.M{"username": "nora"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLogout_ClearsCookies(t *testing.T) {
	testutil.SetupTestDB(t)
	r := newRouter(t)

	w := serve(r, jsonRequest(http.MethodPost, "/api/v1/guard/register", map[string]string{
		"username": "otto", "email": "otto@guards.com", "fullName": "Otto",
		"phone": "123", "password": "secret123", "residence": "Gate 4",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// not approved yet
	w = serve(r, jsonRequest(http.MethodPost, "/api/v1/guard/login", map[string]string{"username": "otto", "password": "secret123"}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	guard := testutil.GuardAccount()
	w = serve(r, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/v1/guard/logout", guard))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cleared := cookieNamed(w, util.AccessTokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}
