package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/xilonoide/xiloadventures-sub005/adapters/beepengine"
	"github.com/xilonoide/xiloadventures-sub005/adapters/worldmodel"
	"github.com/xilonoide/xiloadventures-sub005/internal/api"
	"github.com/xilonoide/xiloadventures-sub005/internal/auth"
	"github.com/xilonoide/xiloadventures-sub005/internal/config"
	"github.com/xilonoide/xiloadventures-sub005/internal/websocket"
	"github.com/xilonoide/xiloadventures-sub005/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Optional .env for local development
	_ = godotenv.Load()
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	if cfg.EditorSecret == "" {
		logger.Warn("SOUNDSTORE_EDITOR_SECRET not set, editor auth disabled for local use")
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// World model collection backed by the editor's world file
	assets, err := worldmodel.OpenFileCollection(cfg.WorldFile, logger)
	if err != nil {
		logger.Fatal("Failed to open world file", zap.Error(err))
	}

	// Audio engine
	engine := beepengine.New()

	// Initialize WebSocket hub for the editor event feed
	hub := websocket.NewHub(logger)
	go hub.Run()

	// Initialize usecase services
	ingestService := usecase.NewIngestService(assets, engine, hub, logger)
	playbackService := usecase.NewPlaybackService(assets, engine, hub, logger)

	// Initialize API routes
	api.InitRoutes(e, api.Deps{
		Assets:       assets,
		Ingest:       ingestService,
		Playback:     playbackService,
		Hub:          hub,
		EditorSecret: cfg.EditorSecret,
		Logger:       logger,
	})

	// Graceful shutdown
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Sound store started",
		zap.Int("port", cfg.Port),
		zap.String("world_file", cfg.WorldFile))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Release any live playback session before the process exits
	playbackService.Stop(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
