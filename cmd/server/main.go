// Package main runs the polling platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/DENNYYESSAR/alx-polly/config"
	"github.com/DENNYYESSAR/alx-polly/internal/auth"
	"github.com/DENNYYESSAR/alx-polly/internal/comments"
	"github.com/DENNYYESSAR/alx-polly/internal/identity"
	"github.com/DENNYYESSAR/alx-polly/internal/middleware"
	"github.com/DENNYYESSAR/alx-polly/internal/polls"
	"github.com/DENNYYESSAR/alx-polly/internal/realtime"
	"github.com/DENNYYESSAR/alx-polly/internal/share"
	"github.com/DENNYYESSAR/alx-polly/internal/votes"
	"github.com/DENNYYESSAR/alx-polly/pkg/database"
	"github.com/DENNYYESSAR/alx-polly/pkg/redis"
	"github.com/DENNYYESSAR/alx-polly/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	resetStore := auth.NewResetTokenStore(rdb.Client, time.Duration(cfg.App.ResetTokenTTLMinutes)*time.Minute)
	authHandler := auth.NewHandler(authRepo, jwtService, resetStore, cfg.App.SiteURL, logger)

	resolver := identity.NewResolver(authRepo, logger)

	// Polls
	pollRepo := polls.NewRepository(pool)
	pollService := polls.NewService(pollRepo, logger)
	pollHandler := polls.NewHandler(pollService, resolver)

	// Votes
	publisher := realtime.NewPublisher(rdb.Client, logger)
	voteRepo := votes.NewRepository(pool)
	voteService := votes.NewService(voteRepo, publisher, logger)
	voteHandler := votes.NewHandler(voteService, resolver)

	// Comments
	commentRepo := comments.NewRepository(pool)
	commentService := comments.NewService(commentRepo, voteRepo, logger)
	commentHandler := comments.NewHandler(commentService, resolver)

	// Share links
	shareHandler := share.NewHandler(pollService, cfg.App.SiteURL)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/refresh", middleware.JWT(jwtService), authHandler.Refresh)
	}

	// Public poll reads and voting (voting accepts anonymous callers when the
	// poll allows it; the service decides).
	router.GET("/polls", pollHandler.ListPublic)
	router.GET("/polls/:id", pollHandler.Get)
	router.GET("/polls/:id/share", shareHandler.Get)
	router.GET("/polls/:id/comments", commentHandler.ListByPoll)
	router.POST("/polls/:id/vote", middleware.OptionalJWT(jwtService), voteHandler.Submit)

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		api.GET("/me/polls", pollHandler.ListMine)
		api.POST("/polls", pollHandler.Create)
		api.PUT("/polls/:id", pollHandler.Update)
		api.PATCH("/polls/:id/settings", pollHandler.UpdateSettings)
		api.DELETE("/polls/:id", pollHandler.Delete)
		api.POST("/polls/:id/comments", commentHandler.Submit)
		api.DELETE("/comments/:id", commentHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
