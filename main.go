package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanbanify/internal/app"
	"kanbanify/internal/config"
	"kanbanify/internal/utils"

	"go.uber.org/zap"
)

func main() {
	envErr := utils.LoadEnv()
	cfg := config.LoadConfig()

	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync()

	utils.ReportEnv(logger, envErr)

	logger.Info("Config loaded",
		zap.String("server_port", cfg.ServerPort),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.Bool("auth_required", cfg.AuthRequired),
		zap.String("env", cfg.Env),
	)

	application, err := app.Bootstrap(&cfg, logger)
	if err != nil {
		logger.Fatal("Failed to bootstrap application", zap.Error(err))
	}
	defer func() {
		if err := application.Store.Close(); err != nil {
			logger.Warn("Failed to close storage", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application.Start(ctx, &cfg, logger)

	srv := application.Router.Server(":" + cfg.ServerPort)
	go func() {
		logger.Info("Server started", zap.String("addr", "localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped with error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server exited gracefully")
}
