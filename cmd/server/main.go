// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/lexrelay/lexrelay/internal/config"
	"github.com/lexrelay/lexrelay/internal/dispatch"
	"github.com/lexrelay/lexrelay/internal/enrich"
	"github.com/lexrelay/lexrelay/internal/llm"
	"github.com/lexrelay/lexrelay/internal/server"
	"github.com/lexrelay/lexrelay/internal/staging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	provider, err := llm.NewGemini(&cfg.Gemini)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	enricher := enrich.New(provider, cfg.Enrich.Enabled)

	dispatcher := dispatch.New(provider, enricher, map[string]bool{
		"gemini": cfg.Gemini.APIKey != "",
	})

	area := staging.NewArea(cfg.Staging.MaxFileBytes)

	srv := server.New(*cfg, dispatcher, area)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
