package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"formgate/internal/adapter/webhook"
	"formgate/internal/config"
	"formgate/internal/database"
	"formgate/internal/domain/admin"
	"formgate/internal/domain/assist"
	"formgate/internal/domain/form"
	"formgate/internal/domain/submission"
	"formgate/internal/middleware"
	appjwt "formgate/internal/pkg/jwt"
	applogger "formgate/internal/pkg/logger"
	"formgate/internal/pkg/ratelimit"
	"formgate/internal/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := applogger.New(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	jwtService := appjwt.New(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)

	// rate-limit counter: redis when configured, in-process otherwise
	var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limitStore = ratelimit.NewRedisStore(client)
		logger.Info("rate limiting backed by redis", zap.String("addr", cfg.Redis.Address))
	}

	formService := form.NewService(form.NewRepository(db))
	formHandler := form.NewHandler(formService)

	dispatcher := submission.NewDispatcher(webhook.NewClient(), nil, logger)
	submissionService := submission.NewService(submission.NewRepository(db), formService, dispatcher, logger)
	submissionHandler := submission.NewHandler(submissionService)

	var provider assist.Provider
	if cfg.Assist.APIKey != "" {
		provider, err = assist.NewProvider(assist.ProviderConfig{
			Name:   cfg.Assist.Provider,
			APIKey: cfg.Assist.APIKey,
			Model:  cfg.Assist.Model,
		}, 60*time.Second)
		if err != nil {
			logger.Warn("assist provider disabled", zap.Error(err))
		}
	}
	assistService := assist.NewService(
		provider,
		formService,
		assist.NewRepository(db),
		ratelimit.NewLimiter(limitStore, cfg.Assist.HourlyQuota),
		logger,
	)
	assistHandler := assist.NewHandler(assistService)

	adminService := admin.NewService(cfg.Admin.Username, cfg.Admin.PasswordHash, jwtService)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(applogger.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public: render + intake, reachable from embedded forms
		form.RegisterPublicRoutes(v1, formHandler)
		submission.RegisterPublicRoutes(v1, submissionHandler)

		admin.RegisterRoutes(v1, adminHandler)

		protected := v1.Group("/admin")
		protected.Use(middleware.AdminAuth(jwtService))
		{
			form.RegisterAdminRoutes(protected, formHandler)
			submission.RegisterAdminRoutes(protected, submissionHandler)
			assist.RegisterAdminRoutes(protected, assistHandler)
		}
	}

	logger.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
