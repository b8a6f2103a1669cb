package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"dzone/internal/config"
	"dzone/internal/game"
	"dzone/internal/logging"
	"dzone/internal/monitoring"
	"dzone/internal/render"
	"dzone/internal/sheet"
	"dzone/internal/town"
	"dzone/internal/transport"
	"dzone/internal/world"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	log := logging.MustNew(cfg.Logging)
	defer func() { _ = log.Sync() }()

	rng := rand.New(rand.NewSource(cfg.World.Seed))

	grid, spawns := loadWorld(cfg, rng, log)

	actorSheet, err := sheet.LoadOrDefault(cfg.Actors.Sheet)
	if err != nil {
		log.Fatal("failed to load actor sheet", zap.Error(err))
	}

	feed := transport.NewFeed()
	t := town.New(town.Options{
		Config: cfg,
		Grid:   grid,
		Sheet:  actorSheet,
		Feed:   feed,
		Log:    log,
		Rand:   rng,
		Spawns: spawns,
	})
	if err := t.Populate(cfg.Actors.Residents); err != nil {
		log.Fatal("failed to place residents", zap.Error(err))
	}

	monitor := monitoring.NewTickMonitor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if addr := cfg.Transport.ListenAddress; addr != "" {
		srv := transport.NewServer(feed, cfg, log)
		srv.OnEvent = func(transport.Event) { monitor.AddEvent() }
		go func() {
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				log.Error("transport stopped", zap.Error(err))
			}
		}()
	}

	_, talkPhases := cfg.GetTalkPhase()
	sheets := render.NewSheetImages(actorSheet, cfg.Actors.SheetImage, talkPhases, log)
	g := game.NewTownGame(cfg, t, render.NewRenderer(sheets), monitor, log)

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.GetTPS())

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal("game exited", zap.Error(err))
	}
}

// loadWorld reads the configured map, or generates a town when none is set.
func loadWorld(cfg *config.Config, rng *rand.Rand, log *zap.Logger) (*world.Grid, []world.Cell) {
	if cfg.World.Map != "" {
		data, err := world.LoadMap(cfg.World.Map)
		if err == nil {
			log.Info("map loaded", zap.String("path", cfg.World.Map),
				zap.Int("width", data.Grid.Width), zap.Int("height", data.Grid.Height))
			return data.Grid, data.Spawns
		}
		log.Warn("map unavailable, generating a town", zap.String("path", cfg.World.Map), zap.Error(err))
	}
	w, h := cfg.GetWorldSize()
	grid := world.Generate(world.GenerateOptions{Width: w, Height: h, Terraces: cfg.World.Terraces}, rng)
	return grid, nil
}
