// Command cmd seeds the configured storage with the demo accounts and their
// welcome boards, then exits.
package main

import (
	"context"
	"log"
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

	application, err := app.Bootstrap(&cfg, logger)
	if err != nil {
		logger.Fatal("Failed to bootstrap application", zap.Error(err))
	}
	defer application.Store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := application.Seeder.Seed(ctx); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
	logger.Info("Seeding finished", zap.String("storage_driver", cfg.StorageDriver))
}
