package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from .env or .env.local in the
// working directory. It stops at the first file that loads; variables
// already present in the process environment are not overwritten.
func loadEnvFile() error {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		slog.Debug("Loaded environment variables", "file", envPath)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
