package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"battery-sim/internal/api"
	"battery-sim/internal/config"
	"battery-sim/internal/logger"
	"battery-sim/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadServer()

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	runs := store.New(cfg.RunTTL)
	runs.StartCleanup(5 * time.Minute)
	defer runs.Close()

	router := api.NewRouter(api.Options{
		Runs:       runs,
		Log:        logger.Component(log, "api"),
		StreamPace: cfg.StreamPace,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Dur("run_ttl", cfg.RunTTL).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}
