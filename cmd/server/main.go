package main

import (
	"context"
	"ctchen222/Criss-Cross/internal/api/controller"
	"ctchen222/Criss-Cross/internal/bot"
	"ctchen222/Criss-Cross/internal/config"
	"ctchen222/Criss-Cross/internal/db"
	"ctchen222/Criss-Cross/internal/hub"
	"ctchen222/Criss-Cross/internal/logger"
	"ctchen222/Criss-Cross/internal/match"
	"ctchen222/Criss-Cross/internal/server"
	"ctchen222/Criss-Cross/internal/session"
	"ctchen222/Criss-Cross/internal/telemetry"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	logger.Init(cfg.SlogLevel())

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	strategy, err := bot.Lookup(cfg.Game.BotStrategy)
	if err != nil {
		return err
	}

	relay, err := newRelay(ctx, cfg)
	if err != nil {
		return err
	}
	defer relay.Close()

	registry := match.NewRegistry()
	h := hub.NewHub(registry, relay, session.Options{
		Size:     cfg.Game.Size,
		Strategy: strategy,
	})
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go h.Run(hubCtx)

	if cfg.SlogLevel() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(h, controller.NewGameController(registry), cfg.AllowedOrigins)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "addr", cfg.HTTPAddr, "relay", cfg.Relay.Backend, "game.size", cfg.Game.Size)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Hijacked websockets are not tracked by Shutdown; stopping the hub closes them.
	stopHub()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("Server exiting")
	return nil
}

func newRelay(ctx context.Context, cfg *config.Config) (hub.Relay, error) {
	if cfg.Relay.Backend != config.RelayRedis {
		return hub.NewLocalRelay(), nil
	}

	rdb, err := db.NewRedisClient(ctx, cfg.Redis.GetRedisAddr())
	if err != nil {
		return nil, err
	}
	relay, err := hub.NewRedisRelay(ctx, rdb)
	if err != nil {
		rdb.Close()
		return nil, err
	}
	return relay, nil
}
