package utils

import (
	"log/slog"
	"os"
)

// Logger is the application logger. It is replaced by InitLogger at startup.
var Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// InitLogger switches to JSON output in production and enables debug logs elsewhere.
func InitLogger(env string) {
	var handler slog.Handler
	switch env {
	case "production", "prod", "release":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}
