package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order. Variables already set in the process
// environment, or by an earlier file, are kept.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles(logger *slog.Logger) {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("Failed to load env file", slog.String("file", path), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("Loaded environment variables", slog.String("file", path))
	}
}
