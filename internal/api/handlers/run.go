package handlers

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"

	"battery-sim/internal/analysis"
	"battery-sim/internal/api/models"
	"battery-sim/internal/chart"
	"battery-sim/internal/config"
	"battery-sim/internal/export"
	"battery-sim/internal/model"
	"battery-sim/internal/simulate"
	"battery-sim/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEMsgpack is negotiated through the Accept header on GET /runs/:id.
const MIMEMsgpack = "application/x-msgpack"

// RunHandler handles run-related requests
type RunHandler struct {
	runs      *store.RunStore
	log       zerolog.Logger
	newEngine func() *simulate.Engine
}

// NewRunHandler creates a new run handler
func NewRunHandler(runs *store.RunStore, log zerolog.Logger) *RunHandler {
	return &RunHandler{
		runs:      runs,
		log:       log.With().Str("handler", "runs").Logger(),
		newEngine: simulate.New,
	}
}

// StartRun handles POST /api/v1/runs
func (h *RunHandler) StartRun(c *gin.Context) {
	var req models.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rr, err := buildRunRequest(req)
	if err != nil {
		respondError(c, err)
		return
	}

	run, err := h.newEngine().Run(c.Request.Context(), rr)
	if err != nil {
		respondError(c, err)
		return
	}
	id := h.runs.Put(run)
	h.log.Info().
		Str("run_id", id).
		Str("state", string(run.State)).
		Int("cells", len(run.Series)).
		Int("duration", run.Duration).
		Msg("linear run completed")

	c.JSON(http.StatusCreated, run)
}

// StartWaveform handles POST /api/v1/waveform
func (h *RunHandler) StartWaveform(c *gin.Context) {
	var req models.WaveformRequest
	// The body is optional.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	run, err := h.newEngine().RunWaveform(c.Request.Context(), seedSource(req.Seed))
	if err != nil {
		respondError(c, err)
		return
	}
	id := h.runs.Put(run)
	h.log.Info().Str("run_id", id).Msg("waveform run completed")

	c.JSON(http.StatusCreated, run)
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.runs.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if strings.Contains(c.GetHeader("Accept"), MIMEMsgpack) {
		b, err := msgpack.Marshal(run)
		if err != nil {
			respondError(c, fmt.Errorf("encode run: %w", err))
			return
		}
		c.Data(http.StatusOK, MIMEMsgpack, b)
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetAnalysis handles GET /api/v1/runs/:id/analysis
func (h *RunHandler) GetAnalysis(c *gin.Context) {
	run, err := h.runs.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	charts := make([]string, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		charts = append(charts, fmt.Sprintf("/api/v1/runs/%s/charts/%s", run.ID, k))
	}
	c.JSON(http.StatusOK, models.AnalysisResponse{
		RunID:     run.ID,
		Mode:      run.Mode,
		Summaries: analysis.SummarizeRun(run),
		Charts:    charts,
	})
}

// GetChart handles GET /api/v1/runs/:id/charts/:kind
func (h *RunHandler) GetChart(c *gin.Context) {
	run, err := h.runs.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	kind, err := chart.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.WritePNG(&buf, kind, run.Series); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// ExportCSV handles GET and POST /api/v1/runs/:id/export
func (h *RunHandler) ExportCSV(c *gin.Context) {
	run, err := h.runs.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.ExportRequest
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		respondBindError(c, err)
		return
	}

	body, err := renderExport(run, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Debug().Str("run_id", run.ID).Int("bytes", len(body)).Msg("export rendered")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Data(http.StatusOK, export.ContentType, []byte(body))
}

func renderExport(run *model.Run, req models.ExportRequest) (string, error) {
	series, err := export.SelectSeries(run, req.Cell)
	if err != nil {
		return "", err
	}
	start, err := config.ParseClock(req.StartTime, run.StartedAt)
	if err != nil {
		return "", err
	}
	stats, err := export.ParseStatistics(req.Statistics)
	if err != nil {
		return "", err
	}
	events := req.Events
	if events == nil {
		events = export.DefaultEvents()
	}
	return export.Format(series, start, events, export.Options{Statistics: stats})
}

func seedSource(seed *uint64) rand.Source {
	if seed == nil {
		return nil
	}
	return simulate.SeededSource(*seed)
}
