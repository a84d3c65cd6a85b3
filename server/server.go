package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"GuardTrack/config"
	db "GuardTrack/config/db"
	jwt "GuardTrack/config/jwt"
	"GuardTrack/config/logger"
	redis "GuardTrack/config/redis"
	"GuardTrack/media"
	"GuardTrack/metrics"
	"GuardTrack/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	Config *config.Config

	MongoEnabled     bool
	CacheEnabled     bool
	MediaEnabled     bool
	WebServerEnabled bool
	WebServerPort    string

	JobsEnabled bool
	JobsHandler func()

	MigrationEnabled bool
	MigrationHandler func(ctx context.Context) error

	WebServerPreHandler func(r *gin.Engine)
}

func GetDefaultOptions() Options {
	return Options{
		MongoEnabled:     true,
		CacheEnabled:     true,
		MediaEnabled:     true,
		WebServerEnabled: true,
		WebServerPort:    "8000",
	}
}

/*
* Bring every enabled subsystem up in dependency order, serve HTTP and
* block until SIGINT/SIGTERM, then shut down gracefully
 */
func Start(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		return errors.New("server: config is required")
	}

	flush, err := logger.Init(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwt.Setup(cfg.AccessTokenSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenSecret, cfg.RefreshTokenExpiry)

	if opts.MongoEnabled {
		if err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase); err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Disconnect(dctx); err != nil {
				zap.L().Warn("mongo disconnect", zap.Error(err))
			}
		}()
	}

	if opts.CacheEnabled {
		err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			zap.L().Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			defer redis.Close()
		}
	}

	if opts.MediaEnabled {
		if err := media.Connect(ctx, cfg.Media); err != nil {
			return err
		}
	}

	if opts.MigrationEnabled && opts.MigrationHandler != nil {
		if err := opts.MigrationHandler(ctx); err != nil {
			return err
		}
	}

	if opts.JobsEnabled && opts.JobsHandler != nil {
		opts.JobsHandler()
	}

	if !opts.WebServerEnabled {
		<-ctx.Done()
		return nil
	}

	engine := NewEngine(cfg)
	if opts.WebServerPreHandler != nil {
		opts.WebServerPreHandler(engine)
	}

	port := opts.WebServerPort
	if cfg.Port != "" {
		port = cfg.Port
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("shutting down http server")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// NewEngine returns a gin engine with the shared middleware chain and
// the /metrics endpoint. Routes are mounted by the caller.
func NewEngine(cfg *config.Config) *gin.Engine {
	if cfg != nil && cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	metrics.Init()

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	var proxies []string
	if cfg != nil {
		proxies = cfg.TrustedProxies
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		zap.L().Warn("invalid TRUSTED_PROXIES, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(RequestLogger(), metrics.Instrument(), Recovery(), ErrorHandler())
	r.GET("/metrics", metrics.Handler())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, util.NewApiError(http.StatusNotFound, "route not found"))
	})
	return r
}
