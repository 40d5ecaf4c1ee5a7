package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lawfolio/lawfolio/backend/site-service/handlers"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/admins"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/config"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/handler"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/content/service"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/database"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/oidc"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/sessions"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/storage"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/tokens"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/validate"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/logger"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/metrics"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: keycloak=%v mongo=%v redis=%v minio=%v", cfg.Keycloak.URL != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.CORS(cfg.Site.CORSOrigin))
	r.Use(gin.Logger(), gin.Recovery())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis backs sessions, the token blacklist and the shared rate limiter.
	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		c := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = c.Close()
		} else {
			rdb = c
			sessions.SetBlacklistClient(rdb)
			logger.Infof("connected to Redis: %s", addr)
		}
	}

	var mongoClient *mongo.Client
	var db *mongo.Database
	if cfg.MongoDB.URI != "" {
		mongoClient, db, err = database.Open(ctx, cfg.MongoDB)
		if err != nil {
			logger.Warnf("%v; falling back to in-memory store", err)
		} else {
			defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		}
	}

	v := validate.New(cfg.Site.Locale)
	var siteSvc *service.Service
	var adminRepo admins.AdminRepository
	if db != nil {
		siteSvc = service.NewMongoService(db, v, service.WithVCardPrefix(cfg.Site.VCardNamePrefix))
		adminRepo = admins.NewMongoAdminRepository(db)
	} else {
		siteSvc = service.NewMemoryService(v, service.WithVCardPrefix(cfg.Site.VCardNamePrefix))
		adminRepo = admins.NewMemoryAdminRepository()
	}
	if cfg.Site.SeedOnStartup {
		if _, err := siteSvc.SeedDefaultsIfAbsent(ctx); err != nil {
			logger.Errorf("seed on startup failed: %v", err)
		}
	}

	adminSvc := admins.NewService(adminRepo, v)
	sessionsSvc := sessions.NewService(sessions.NewRepository(rdb, db))

	verifiers := middleware.AnyVerifier{tokens.NewVerifier(cfg.JWT.Secret)}
	oidcVer, err := oidc.NewVerifier(ctx, cfg.Keycloak)
	if err != nil {
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	} else if oidcVer != nil {
		verifiers = append(verifiers, oidcVer)
	}
	auth := middleware.AuthMiddleware(verifiers)

	var images *storage.Images
	if cfg.MinIO.Endpoint != "" {
		backend, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			logger.Warnf("image uploads disabled: %v", err)
		} else {
			images = storage.NewImages(backend)
		}
	}

	// Only the public contact form is throttled.
	var limits []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limits = append(limits, middleware.RedisRateLimitMiddleware(rdb, "messages", cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			limits = append(limits, middleware.RateLimitMiddleware("messages", cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{"storage": true, "redis": true, "media": images != nil || cfg.MinIO.Endpoint == ""}

		if cfg.MongoDB.URI != "" {
			pctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			deps["storage"] = mongoClient != nil && mongoClient.Ping(pctx, readpref.Primary()) == nil
			cancel()
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = rdb != nil && rdb.Ping(c.Request.Context()).Err() == nil
		}
		for _, ok := range deps {
			ready = ready && ok
		}

		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})

	authH := handlers.NewAuthHandler(cfg, adminSvc, sessionsSvc, v, verifiers)
	authH.Register(r.Group("/"))
	r.GET("/api/v1/me", auth, authH.Me)

	handler.RegisterSiteRoutes(r, siteSvc, images, limits...)
	handler.RegisterAdminRoutes(r.Group("/api/admin", auth), siteSvc, images)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting site service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
