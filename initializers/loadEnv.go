package initializers

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment when the file exists.
// Variables already set in the environment win.
func LoadEnv() {
	err := godotenv.Load()
	switch {
	case err == nil:
		slog.Debug("Loaded environment from .env")
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No .env file found, using process environment")
	default:
		slog.Warn("Error loading .env file", "error", err)
	}
}
