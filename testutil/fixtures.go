package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "GuardTrack/config/jwt"
	"GuardTrack/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AccessSecret  = "test-access-secret"
	RefreshSecret = "test-refresh-secret"
)

// SetupJWT installs fixed secrets so handlers can sign and verify tokens.
func SetupJWT(t *testing.T) {
	t.Helper()
	jwt.Setup(AccessSecret, time.Hour, RefreshSecret, 24*time.Hour)
}

// TestAccount is the identity carried by a test access token.
type TestAccount struct {
	ID       string
	Username string
	Email    string
	Role     string
	Kind     string
}

func AdminAccount() TestAccount {
	return TestAccount{
		ID:       primitive.NewObjectID().Hex(),
		Username: "admin",
		Email:    "admin@test.com",
		Role:     "admin",
		Kind:     util.KindUser,
	}
}

func UserAccount() TestAccount {
	return TestAccount{
		ID:       primitive.NewObjectID().Hex(),
		Username: "resident",
		Email:    "resident@test.com",
		Role:     "user",
		Kind:     util.KindUser,
	}
}

func GuardAccount() TestAccount {
	return TestAccount{
		ID:       primitive.NewObjectID().Hex(),
		Username: "guard",
		Email:    "guard@test.com",
		Role:     "guard",
		Kind:     util.KindGuard,
	}
}

// AccessToken signs an access token for the account. SetupJWT must have
// been called.
func AccessToken(t *testing.T, acc TestAccount) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(acc.ID, acc.Username, acc.Email, acc.Role, acc.Kind)
	if err != nil {
		t.Fatalf("sign access token: %v", err)
	}
	return token
}

// WithAccount attaches the account's access token as a cookie.
func WithAccount(t *testing.T, r *http.Request, acc TestAccount) *http.Request {
	t.Helper()
	r.AddCookie(&http.Cookie{Name: util.AccessTokenCookie, Value: AccessToken(t, acc)})
	return r
}

func NewAuthenticatedRequest(t *testing.T, method, target string, acc TestAccount) *http.Request {
	t.Helper()
	return WithAccount(t, httptest.NewRequest(method, target, nil), acc)
}
