package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"supstats/internal/app"
)

func main() {
	// A local .env can carry SUPSTATS_* settings during development.
	_ = godotenv.Load()

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
