package utils

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv populates the process environment from .env (or the given files).
// The error is reported later through ReportEnv, once a logger exists.
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}

func ReportEnv(logger *zap.Logger, err error) {
	if err != nil {
		logger.Warn("ENV file not found or failed to load, using defaults")
	} else {
		logger.Info("ENV file loaded successfully")
	}
}
