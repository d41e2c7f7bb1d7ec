// Package api wires the HTTP handlers into a gin router.
package api

import (
	"net/http"
	"time"

	"battery-sim/internal/api/handlers"
	"battery-sim/internal/api/middleware"
	"battery-sim/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options configures the router.
type Options struct {
	Runs       *store.RunStore
	Log        zerolog.Logger
	StreamPace time.Duration
}

// NewRouter builds the API router with its middleware.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(opts.Log))
	router.Use(middleware.ErrorHandler(opts.Log))

	runHandler := handlers.NewRunHandler(opts.Runs, opts.Log)
	streamHandler := handlers.NewStreamHandler(opts.Runs, opts.StreamPace, opts.Log)
	catalogHandler := handlers.NewCatalogHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "runs": opts.Runs.Len()})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/chemistries", catalogHandler.ListChemistries)
		api.GET("/tasks/types", catalogHandler.ListTaskTypes)
		api.POST("/cells/overview", handlers.CellsOverview)

		api.POST("/runs", runHandler.StartRun)
		api.POST("/waveform", runHandler.StartWaveform)
		api.GET("/runs/stream", streamHandler.Stream)
		api.GET("/runs/:id", runHandler.GetRun)
		api.GET("/runs/:id/analysis", runHandler.GetAnalysis)
		api.GET("/runs/:id/charts/:kind", runHandler.GetChart)
		api.GET("/runs/:id/export", runHandler.ExportCSV)
		api.POST("/runs/:id/export", runHandler.ExportCSV)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
