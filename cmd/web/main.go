package main

import (
	"embed"
	"log/slog"
	"os"

	"fieldpulse/internal/app"
)

// Embedded dashboard templates
//go:embed templates/*
var templateFiles embed.FS

func main() {
	application, err := app.NewApplication(templateFiles)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
