package handlers

import (
	"context"
	"fmt"
	"time"

	"battery-sim/internal/api/models"
	"battery-sim/internal/model"
	"battery-sim/internal/simulate"
	"battery-sim/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// StreamHandler runs a simulation live over a websocket, one frame per sample.
type StreamHandler struct {
	runs    *store.RunStore
	log     zerolog.Logger
	pace    time.Duration
	origins []string
}

// NewStreamHandler creates a stream handler. pace is the delay between frames.
func NewStreamHandler(runs *store.RunStore, pace time.Duration, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		runs:    runs,
		log:     log.With().Str("handler", "stream").Logger(),
		pace:    pace,
		origins: []string{"*"},
	}
}

// Stream handles GET /api/v1/runs/stream
//
// The client sends one StreamRequest; the server answers with a "sample"
// frame per generated sample and a final "completed" frame carrying the id
// of the stored run. Input errors are reported as a single "error" frame.
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	ctx := c.Request.Context()

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	var req models.StreamRequest
	err = wsjson.Read(readCtx, conn, &req)
	cancel()
	if err != nil {
		h.log.Debug().Err(err).Msg("no stream request")
		return
	}

	// Reading stops here; a client close cancels ctx.
	ctx = conn.CloseRead(ctx)

	run, err := h.run(ctx, conn, req)
	if err != nil {
		if ctx.Err() != nil {
			h.log.Info().Msg("stream closed by client")
			return
		}
		status, code := errorStatus(err)
		_ = wsjson.Write(ctx, conn, models.StreamFrame{
			Type:  models.FrameError,
			Error: &models.ErrorDetail{Code: code, Message: err.Error(), Details: map[string]interface{}{"status": status}},
		})
		conn.Close(websocket.StatusPolicyViolation, code)
		return
	}

	id := h.runs.Put(run)
	h.log.Info().Str("run_id", id).Str("mode", string(run.Mode)).Msg("streamed run completed")

	if err := wsjson.Write(ctx, conn, models.StreamFrame{Type: models.FrameCompleted, RunID: id}); err != nil {
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *StreamHandler) run(ctx context.Context, conn *websocket.Conn, req models.StreamRequest) (*model.Run, error) {
	engine := simulate.New()
	engine.Pace = h.pace
	engine.OnSample = func(ev simulate.SampleEvent) error {
		s := ev.Sample
		return wsjson.Write(ctx, conn, models.StreamFrame{
			Type:   models.FrameSample,
			Cell:   ev.Cell,
			Label:  ev.Label,
			Steps:  ev.Steps,
			Sample: &s,
			Gauge:  ev.Gauge,
		})
	}

	switch model.Mode(req.Mode) {
	case "", model.ModeLinear:
		if req.Run == nil {
			return nil, fmt.Errorf("%w: linear stream needs a run request", model.ErrInvalidInput)
		}
		rr, err := buildRunRequest(*req.Run)
		if err != nil {
			return nil, err
		}
		return engine.Run(ctx, rr)
	case model.ModeWaveform:
		return engine.RunWaveform(ctx, seedSource(req.Seed))
	}
	return nil, fmt.Errorf("%w: unknown mode %q", model.ErrInvalidInput, req.Mode)
}
