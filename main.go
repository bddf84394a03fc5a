package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/datapad/audit"
	"github.com/kasuganosora/datapad/cache"
	"github.com/kasuganosora/datapad/config"
	dbadapter "github.com/kasuganosora/datapad/db"
	"github.com/kasuganosora/datapad/functions"
	"github.com/kasuganosora/datapad/metrics"
	mw "github.com/kasuganosora/datapad/middleware"
	"github.com/kasuganosora/datapad/model"
	"github.com/kasuganosora/datapad/scheduler"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
		gin.SetMode(gin.ReleaseMode)
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	if cfg.Security.JWTSecret == "" {
		logger.Warn("security.jwt_secret is not set; mutating functions accept anonymous callers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Database ----
	db, err := dbadapter.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	logger.Info("DB initialized", zap.String("mode", cfg.Database.Mode))

	// ---- Cache / PubSub ----
	cacheConfig := cache.CacheConfig{
		RedisAddr:       cfg.Cache.RedisAddr,
		RedisPassword:   cfg.Cache.RedisPassword,
		RedisDB:         cfg.Cache.RedisDB,
		LocalGCInterval: cfg.Cache.LocalGCInterval,
		LocalPubSubBuf:  cfg.Cache.LocalPubSubBuf,
	}
	c, err := cache.NewCache(cacheConfig)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}
	pubsub, err := cache.NewPubSub(cacheConfig)
	if err != nil {
		log.Fatalf("pubsub: %v", err)
	}
	logger.Info("Cache initialized", zap.Bool("redis", cfg.Cache.RedisAddr != ""))

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()

	// ---- Audit ----
	var auditSvc *audit.Service
	if cfg.Audit.Enabled {
		auditSvc = audit.New(db, logger)
		defer auditSvc.Stop()
		if cfg.Audit.Retention > 0 && cfg.Audit.PurgeEvery > 0 {
			purge := func(ctx context.Context) error {
				n, err := auditSvc.Purge(ctx, time.Now().Add(-cfg.Audit.Retention))
				if err == nil && n > 0 {
					logger.Info("audit rows purged", zap.Int64("rows", n))
				}
				return err
			}
			sched.After("audit_purge_startup", 30*time.Second, purge)
			sched.Every("audit_purge", cfg.Audit.PurgeEvery, purge)
		}
	}

	// ---- Functions ----
	m := metrics.New()
	svc := functions.New(functions.Options{
		DB:           db,
		Cache:        c,
		PubSub:       pubsub,
		InventoryTTL: cfg.Cache.InventoryTTL,
		Audit:        auditSvc,
		Metrics:      m,
		Logger:       logger,
	})
	logger.Info("functions registered", zap.Strings("names", svc.Names()))
	go func() {
		if err := svc.Listen(ctx); err != nil {
			logger.Error("inventory invalidation listener stopped", zap.Error(err))
		}
	}()

	// ---- Gin HTTP Server ----
	r := gin.New()
	r.Use(mw.TraceID(), mw.Logger(logger), mw.Recovery(logger))
	r.Use(mw.RateLimit(ctx, rate.Limit(cfg.Security.RateLimitRPS), cfg.Security.RateLimitBurst))
	r.Use(mw.Auth(cfg.Security))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", mw.IPWhitelist(cfg.Security.MetricsAllowedIPs), gin.WrapH(m.Handler()))
	svc.Register(r, cfg.Functions, cfg.Security)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("Server listening", zap.String("addr", addr), zap.String("functions", cfg.Functions.BasePath))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server", zap.Error(err))
	}
}
