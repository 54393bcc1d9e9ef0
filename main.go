package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aaronzipp/scoreboards/internal/config"
	"github.com/aaronzipp/scoreboards/internal/handlers"
	"github.com/aaronzipp/scoreboards/internal/logging"
	"github.com/aaronzipp/scoreboards/internal/models"
	"github.com/aaronzipp/scoreboards/internal/scoreboard"
	"github.com/aaronzipp/scoreboards/internal/store"
	"github.com/aaronzipp/scoreboards/internal/surface"
	"github.com/aaronzipp/scoreboards/internal/surface/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if cfg.Debug {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	version, err := cfg.Version()
	if err != nil {
		log.Fatal("Invalid host version: ", err)
	}
	provider, err := surface.NewProvider(version)
	if err != nil {
		log.Fatal("Failed to select capabilities: ", err)
	}
	health, err := cfg.HealthStyle()
	if err != nil {
		log.Fatal("Invalid tab health style: ", err)
	}

	ctx := &handlers.Context{
		LobbyStore: store.NewMemory[string, *models.Lobby](),
		Host:       memory.NewHost(),
		Caps:       provider,
		Options: scoreboard.Options{
			TabHealth:       health,
			BelowNameHealth: cfg.Board.BelowNameHealth,
		},
		Title:     cfg.Board.Title,
		PublicURL: cfg.Server.PublicURL,
	}

	log.Printf("Host version %s: %d-character fields, %d-character lines",
		provider.Version(), provider.MaxFieldLength(), provider.MaxLineLength())
	log.Printf("Server starting on %s (public URL %s)", cfg.Server.Addr, cfg.Server.PublicURL)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, ctx.Routes()))
}
