package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"GuardTrack/models"
	"GuardTrack/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// truncatedUpload is a multipart body whose only part never reaches the
// closing boundary.
const truncatedUpload = "--xyz\r\n" +
	"Content-Disposition: form-data; name=\"avatar\"; filename=\"a.png\"\r\n" +
	"Content-Type: image/png\r\n\r\n" +
	"\x89PNG"

func TestOptionalFile(t *testing.T) {
	t.Run("no multipart body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		c, _ := testContext(req)
		fh, err := optionalFile(c, "avatar")
		require.NoError(t, err)
		assert.Nil(t, fh)
	})

	t.Run("file not sent", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("username", "alice"))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		c, _ := testContext(req)
		fh, err := optionalFile(c, "avatar")
		require.NoError(t, err)
		assert.Nil(t, fh)
	})

	t.Run("file sent", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("avatar", "a.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n"))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		c, _ := testContext(req)
		fh, err := optionalFile(c, "avatar")
		require.NoError(t, err)
		require.NotNil(t, fh)
		assert.Equal(t, "a.png", fh.Filename)
	})

	t.Run("truncated body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(truncatedUpload))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		c, _ := testContext(req)
		fh, err := optionalFile(c, "avatar")
		assert.Nil(t, fh)
		apiErr := util.AsApiError(err)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, invalidBody, apiErr.Message)
	})
}

func TestValidationError(t *testing.T) {
	bind := func(body string, obj interface{}) *util.ApiError {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c, _ := testContext(req)
		err := c.ShouldBindJSON(obj)
		require.Error(t, err)
		return validationError(err)
	}

	cases := []struct {
		name    string
		body    string
		obj     interface{}
		message string
		fields  []string
	}{
		{"missing fields", `{"username":"bob"}`, &models.RegisterGuardRequest{},
			util.ALL_FIELDS_REQUIRED, []string{"email", "fullName", "phone", "password", "residence"}},
		{"blank name", `{"username":"  ","email":"b@b.co","fullName":"Bob","password":"secret1"}`, &models.RegisterUserRequest{},
			util.ALL_FIELDS_REQUIRED, []string{"username"}},
		{"bad email", `{"username":"bob","email":"bob@","fullName":"Bob","password":"secret1"}`, &models.RegisterUserRequest{},
			util.INVALID_EMAIL, []string{"email"}},
		{"short password", `{"username":"bob","email":"b@b.co","fullName":"Bob","password":"123"}`, &models.RegisterUserRequest{},
			util.PASSWORD_TOO_SHORT, []string{"password"}},
		{"short new password", `{"oldPassword":"secret1","newPassword":"123"}`, &models.ChangePasswordRequest{},
			util.PASSWORD_TOO_SHORT, []string{"newPassword"}},
		{"login without identity", `{"password":"x"}`, &models.LoginRequest{},
			util.USERNAME_OR_EMAIL_REQUIRED, []string{"username"}},
		{"login without password", `{"username":"bob"}`, &models.LoginRequest{},
			util.PASSWORD_NOT_PROVIDED, []string{"password"}},
		{"ping without longitude", `{"latitude":1.5}`, &models.LivePingRequest{},
			util.ALL_FIELDS_REQUIRED, []string{"longitude"}},
		{"work percent missing", `{}`, &models.WorkPercentRequest{},
			util.ALL_FIELDS_REQUIRED, []string{"workPercent"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := bind(tc.body, tc.obj)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, tc.message, apiErr.Message)
			assert.Equal(t, tc.fields, apiErr.Errors)
		})
	}

	t.Run("zero work percent is present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"workPercent":0}`))
		req.Header.Set("Content-Type", "application/json")
		c, _ := testContext(req)
		var body models.WorkPercentRequest
		require.NoError(t, c.ShouldBindJSON(&body))
		assert.Equal(t, 0, *body.WorkPercent)
	})

	t.Run("malformed json", func(t *testing.T) {
		apiErr := bind(`{not json`, &models.LoginRequest{})
		assert.Equal(t, invalidBody, apiErr.Message)
	})
}
