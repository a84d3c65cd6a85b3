package jwt

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "guardtrack"

var ErrInvalidToken = errors.New("invalid token")

type settings struct {
	accessSecret  []byte
	accessTTL     time.Duration
	refreshSecret []byte
	refreshTTL    time.Duration
}

var (
	mu  sync.RWMutex
	cur settings
)

// Setup installs the signing secrets and lifetimes. It must run before
// any token is generated or parsed.
func Setup(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	cur = settings{
		accessSecret:  []byte(accessSecret),
		accessTTL:     accessTTL,
		refreshSecret: []byte(refreshSecret),
		refreshTTL:    refreshTTL,
	}
}

func load() settings {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// AccessClaims identify the caller on every authenticated request.
type AccessClaims struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Kind     string `json:"kind"`
	gojwt.RegisteredClaims
}

// RefreshClaims only carry enough to find the owning document.
type RefreshClaims struct {
	ID   string `json:"_id"`
	Kind string `json:"kind"`
	gojwt.RegisteredClaims
}

func registered(subject string, ttl time.Duration) gojwt.RegisteredClaims {
	now := time.Now().UTC()
	return gojwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
}

func GenerateAccessToken(id, username, email, role, kind string) (string, error) {
	s := load()
	if len(s.accessSecret) == 0 {
		return "", errors.New("access token secret is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return "", errors.New("id is required")
	}
	claims := AccessClaims{
		ID:               id,
		Username:         username,
		Email:            email,
		Role:             role,
		Kind:             kind,
		RegisteredClaims: registered(id, s.accessTTL),
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func GenerateRefreshToken(id, kind string) (string, error) {
	s := load()
	if len(s.refreshSecret) == 0 {
		return "", errors.New("refresh token secret is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return "", errors.New("id is required")
	}
	claims := RefreshClaims{
		ID:               id,
		Kind:             kind,
		RegisteredClaims: registered(id, s.refreshTTL),
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

func ParseAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parse(token, claims, load().accessSecret); err != nil {
		return nil, err
	}
	if claims.ID == "" || claims.Kind == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func ParseRefreshToken(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parse(token, claims, load().refreshSecret); err != nil {
		return nil, err
	}
	if claims.ID == "" || claims.Kind == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func parse(token string, claims gojwt.Claims, secret []byte) error {
	token = strings.TrimSpace(token)
	if token == "" || len(secret) == 0 {
		return ErrInvalidToken
	}
	parsed, err := gojwt.ParseWithClaims(token, claims,
		func(t *gojwt.Token) (any, error) {
			return secret, nil
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuedAt(),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
