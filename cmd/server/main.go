package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"scholaria/backend/config"
	"scholaria/backend/internal/api/handler"
	"scholaria/backend/internal/api/router"
	"scholaria/backend/internal/repository"
	"scholaria/backend/internal/service"
	"scholaria/backend/pkg/database"
	"scholaria/backend/pkg/jwt"
	applogger "scholaria/backend/pkg/logger"
	"scholaria/backend/pkg/redis"
)

func main() {
	// 1. load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting scholaria backend",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 run migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("acquire underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. redis (optional: token blacklist degrades when unavailable)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist disabled", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. dependency injection: repository → service → handler
	repo := repository.NewRepository(db)
	svc := service.NewServices(repo, logger)
	h := handler.NewHandler(svc)

	// 7. router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// 9. wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
