package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Insper-Code/site-code/internal/di"
	"github.com/Insper-Code/site-code/internal/middleware"
	"github.com/Insper-Code/site-code/internal/migrations"
	"github.com/Insper-Code/site-code/internal/seed"
	"github.com/Insper-Code/site-code/pkg/config"
	"github.com/Insper-Code/site-code/pkg/database"
	"github.com/Insper-Code/site-code/pkg/logger"
	"github.com/Insper-Code/site-code/pkg/redis"
	"github.com/Insper-Code/site-code/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx := context.Background()

	// Tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		log.Fatal("Failed to init telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	// PostgreSQL
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  10 * time.Second,
		MaxRetries:      3,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional; announcement reads fall back to Postgres
	redisClient, err := redis.NewClient(ctx, &redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		MaxRetries:   3,
	})
	if err != nil {
		log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Schema and bootstrap data
	if err := migrations.Run(ctx, cfg.Database.DSN()); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	container := di.NewContainer(cfg, db, redisClient)

	if err := seed.Run(ctx, container.UserRepo, container.AnnouncementRepo); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	router := setupRouter(cfg, container)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Member portal listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, c *di.Container) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.TracingMiddleware(cfg.App.Name))
	router.Use(middleware.Session(c.Codec, c.SessionService))

	// Probes
	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	// API
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", c.AuthHandler.Login)
			auth.POST("/register", c.AuthHandler.Register)
			auth.POST("/logout", c.AuthHandler.Logout)
			// full path must equal middleware.SessionRefreshPath so the
			// session middleware revalidates it as an explicit refresh
			auth.POST("/session/refresh", middleware.RequireAuth(), c.AuthHandler.RefreshSession)
			auth.GET("/me", middleware.RequireAuth(), c.AuthHandler.Me)
			auth.PUT("/password", middleware.RequireAuth(), c.AuthHandler.ChangePassword)
		}

		announcements := v1.Group("/announcements")
		announcements.Use(middleware.RequireAuth())
		{
			announcements.GET("", c.AnnouncementHandler.List)
			announcements.GET("/:id", c.AnnouncementHandler.Get)
			announcements.POST("", middleware.RequireAdmin(), c.AnnouncementHandler.Create)
			announcements.PUT("/:id", middleware.RequireAdmin(), c.AnnouncementHandler.Update)
			announcements.DELETE("/:id", middleware.RequireAdmin(), c.AnnouncementHandler.Delete)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", c.UserHandler.List)
			admin.POST("/users", c.UserHandler.Create)
			admin.GET("/users/:id", c.UserHandler.Get)
			admin.PUT("/users/:id", c.UserHandler.Update)
			admin.DELETE("/users/:id", c.UserHandler.Delete)
		}
	}

	// Page-flow gate for everything outside the API
	router.NoRoute(middleware.Gate(), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "Route not found"}})
	})

	return router
}
