package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	GinMode       string
	LogLevel      string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration

	CORSOrigins    []string
	CookieSecure   bool
	TrustedProxies []string

	Media Media

	LiveLocTTL time.Duration
	ZoneRadius float64

	LoginRate  float64
	LoginBurst int

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Media describes the S3-compatible host avatars are pushed to.
type Media struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
	MaxBytes  int64
}

func (m Media) Enabled() bool {
	return m.Endpoint != "" && m.Bucket != ""
}

// Load reads the configuration from the environment. godotenv has
// already merged .env into the environment by the time this runs.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getString("PORT", "8000"),
		GinMode:       getString("GIN_MODE", "release"),
		LogLevel:      getString("LOG_LEVEL", "info"),
		MongoURI:      getString("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getString("DB_NAME", "guardtrack"),

		RedisAddr:     getString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getString("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 10*time.Minute),

		AccessTokenSecret:  getString("ACCESS_TOKEN_SECRET", ""),
		AccessTokenExpiry:  getDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		RefreshTokenSecret: getString("REFRESH_TOKEN_SECRET", ""),
		RefreshTokenExpiry: getDuration("REFRESH_TOKEN_EXPIRY", 240*time.Hour),

		CORSOrigins:  getList("CORS_ORIGIN", []string{"*"}),
		CookieSecure: getBool("COOKIE_SECURE", false),

		// empty means X-Forwarded-For is ignored and ClientIP is the peer address
		TrustedProxies: getList("TRUSTED_PROXIES", nil),

		Media: Media{
			Endpoint:  getString("MEDIA_ENDPOINT", ""),
			AccessKey: getString("MEDIA_ACCESS_KEY", ""),
			SecretKey: getString("MEDIA_SECRET_KEY", ""),
			Bucket:    getString("MEDIA_BUCKET", ""),
			UseSSL:    getBool("MEDIA_USE_SSL", true),
			PublicURL: getString("MEDIA_PUBLIC_URL", ""),
			MaxBytes:  int64(getInt("MEDIA_MAX_BYTES", 5<<20)),
		},

		LiveLocTTL: getDuration("LIVELOC_TTL", 168*time.Hour),
		ZoneRadius: getFloat("ZONE_RADIUS", 100),

		LoginRate:  getFloat("LOGIN_RATE", 1),
		LoginBurst: getInt("LOGIN_BURST", 5),

		AdminUsername: getString("ADMIN_USERNAME", ""),
		AdminEmail:    getString("ADMIN_EMAIL", ""),
		AdminPassword: getString("ADMIN_PASSWORD", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.RefreshTokenSecret == "" {
		return errors.New("REFRESH_TOKEN_SECRET is required")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.AccessTokenExpiry <= 0 || c.RefreshTokenExpiry <= 0 {
		return errors.New("token expiry must be positive")
	}
	if c.ZoneRadius <= 0 {
		return errors.New("ZONE_RADIUS must be positive")
	}
	return nil
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(getString(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(getString(key, ""), 64)
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(getString(key, ""))
	if err != nil {
		return def
	}
	return v
}

// getDuration accepts Go durations ("15m") and the "<n>d" shorthand.
func getDuration(key string, def time.Duration) time.Duration {
	raw := getString(key, "")
	if raw == "" {
		return def
	}
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil {
			return def
		}
		return time.Duration(days) * 24 * time.Hour
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	raw := getString(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
