package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"

	"sinandash/internal/app"
)

// Embedded dashboard page and assets.
//
//go:embed all:web
var webFiles embed.FS

func main() {
	webFS, err := fs.Sub(webFiles, "web")
	if err != nil {
		slog.Error("web assets embedding failed", slog.String("error", err.Error()))
		webFS = nil
	}

	application, err := app.NewApplication(webFS)
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
