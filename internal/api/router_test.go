package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"battery-sim/internal/api/models"
	"battery-sim/internal/model"
	"battery-sim/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.RunStore) {
	t.Helper()
	runs := store.New(time.Minute)
	return NewRouter(Options{Runs: runs, Log: zerolog.Nop()}), runs
}

func do(t *testing.T, r http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func startRun(t *testing.T, r http.Handler, body string) model.Run {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/runs", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var run model.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	return run
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorDetail {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

const chargingRun = `{"state":"Charging","duration":2,"cells":[{"chemistry":"LFP","current":1,"temperature":30},{"chemistry":"nmc","current":0.5,"temperature":25}]}`

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestListChemistries(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/chemistries", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ChemistriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Chemistries, 2)
	assert.Equal(t, model.ChemistryLFP, resp.Chemistries[0].Tag)
	assert.Equal(t, 3.6, resp.Chemistries[1].NominalVoltage)
}

func TestListTaskTypes(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/tasks/types", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TaskTypesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.MaxTasks, resp.MaxTasks)
	require.Len(t, resp.TaskTypes, 3)
	assert.Equal(t, "IDLE", resp.TaskTypes[1].Name)
	assert.Len(t, resp.TaskTypes[1].Parameters, 1)
}

func TestStartRun(t *testing.T) {
	r, runs := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.ModeLinear, run.Mode)
	require.Len(t, run.Series, 2)
	assert.Equal(t, "Cell 1", run.Series[0].Label)
	require.Len(t, run.Series[0].Samples, 3)
	assert.Equal(t, []float64{2.8, 3.2, 3.6}, run.Series[0].Voltages())
	assert.Equal(t, []float64{3.2, 3.6, 4.0}, run.Series[1].Voltages())
	assert.Equal(t, 1, runs.Len())
}

func TestStartRun_Errors(t *testing.T) {
	r, runs := newTestRouter(t)

	cases := []struct {
		name string
		body string
		code string
	}{
		{"malformed", `{"state":`, "INVALID_REQUEST"},
		{"missing duration", `{"state":"Idle","cells":[{"chemistry":"LFP"}]}`, "INVALID_REQUEST"},
		{"unknown chemistry", `{"state":"Idle","duration":3,"cells":[{"chemistry":"NaIon"}]}`, "UNKNOWN_CHEMISTRY"},
		{"bad state", `{"state":"Resting","duration":3,"cells":[{"chemistry":"LFP"}]}`, "INVALID_INPUT"},
		{"negative duration", `{"state":"Idle","duration":-1,"cells":[{"chemistry":"LFP"}]}`, "INVALID_INPUT"},
		{"negative current", `{"state":"Idle","duration":1,"cells":[{"chemistry":"LFP","current":-1}]}`, "INVALID_INPUT"},
		{"no cells", `{"state":"Idle","duration":1,"cells":[]}`, "INVALID_INPUT"},
		{"bad task", `{"state":"Idle","duration":1,"cells":[{"chemistry":"LFP"}],"tasks":[{"task_type":"IDLE","time_seconds":0}]}`, "INVALID_INPUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/v1/runs", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}
	assert.Equal(t, 0, runs.Len())
}

func TestGetRun(t *testing.T) {
	r, _ := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	w := do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, run.ID, got.ID)

	w = do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID, "", "Accept", "application/x-msgpack")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-msgpack", w.Header().Get("Content-Type"))
	var packed model.Run
	require.NoError(t, msgpack.Unmarshal(w.Body.Bytes(), &packed))
	assert.Equal(t, run.ID, packed.ID)
	assert.Equal(t, run.Series, packed.Series)
}

func TestGetRun_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, path := range []string{
		"/api/v1/runs/nope",
		"/api/v1/runs/nope/analysis",
		"/api/v1/runs/nope/export",
		"/api/v1/runs/nope/charts/capacity",
	} {
		w := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "RUN_NOT_FOUND", decodeError(t, w).Code, path)
	}
}

func TestExport_Get(t *testing.T) {
	r, _ := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	w := do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID+"/export?start_time=19:30:00", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="battery_simulation.csv"`, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	lines := strings.Split(body, "\n")
	assert.Equal(t, "### Test Data ###", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "1,00:30.0,Step Jumped,19:30:00,2.8,5.0,"), lines[2])
	assert.True(t, strings.HasSuffix(lines[4], ",30.0"), lines[4])
	assert.Contains(t, body, "### Cycle Statistics ###")
	assert.Contains(t, body, "Channel test completed")
	assert.Contains(t, body, "### Process Information ###")
}

func TestExport_PostSelectsCellAndEvents(t *testing.T) {
	r, _ := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	w := do(t, r, http.MethodPost, "/api/v1/runs/"+run.ID+"/export",
		`{"cell":"Cell 2","start_time":"08:00:00","events":[]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.Contains(t, body, "1,00:30.0,Step Jumped,08:00:00,3.2,5.0,")
	assert.NotContains(t, body, "Channel test completed")
	assert.Contains(t, body, "### Operation Log ###\nTimestamp,Sample ID,Event Type\n\n")
}

func TestExport_Merged(t *testing.T) {
	r, _ := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	w := do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID+"/export?cell=all", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\n6,00:30.0,Step Jumped,")
}

func TestExport_Errors(t *testing.T) {
	r, _ := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	for _, q := range []string{"?cell=Cell%209", "?start_time=noon", "?statistics=median"} {
		w := do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID+"/export"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, "INVALID_INPUT", decodeError(t, w).Code, q)
	}
}

func TestAnalysis(t *testing.T) {
	r, _ := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	w := do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID+"/analysis", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Summaries, 2)
	assert.Equal(t, 2.8, resp.Summaries[0].MinVoltage)
	assert.Equal(t, 3.6, resp.Summaries[0].MaxVoltage)
	assert.Equal(t, 3.2, resp.Summaries[0].MeanVoltage)
	assert.Len(t, resp.Charts, 3)
	assert.Equal(t, "/api/v1/runs/"+run.ID+"/charts/voltage-current", resp.Charts[0])
}

func TestChart(t *testing.T) {
	r, _ := newTestRouter(t)
	run := startRun(t, r, chargingRun)

	w := do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID+"/charts/temperature", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = do(t, r, http.MethodGet, "/api/v1/runs/"+run.ID+"/charts/soc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWaveform_Seeded(t *testing.T) {
	r, _ := newTestRouter(t)

	var runs [2]model.Run
	for i := range runs {
		w := do(t, r, http.MethodPost, "/api/v1/waveform", `{"seed":42}`)
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs[i]))
	}
	assert.NotEqual(t, runs[0].ID, runs[1].ID)
	require.Len(t, runs[0].Series, 1)
	assert.Equal(t, "Waveform", runs[0].Series[0].Label)
	assert.Len(t, runs[0].Series[0].Samples, 40)
	assert.Equal(t, runs[0].Series, runs[1].Series)

	w := do(t, r, http.MethodPost, "/api/v1/waveform", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCellsOverview(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/cells/overview", `{"chemistries":["LFP","NMC"],"seed":7}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.OverviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cells, 2)
	assert.Equal(t, "Cell 2 (NMC)", resp.Cells[1].Name)

	w = do(t, r, http.MethodPost, "/api/v1/cells/overview", `{"chemistries":["LFP","XYZ"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_CHEMISTRY", decodeError(t, w).Code)
}

func TestStream(t *testing.T) {
	r, runs := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/runs/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	duration := 1
	require.NoError(t, wsjson.Write(ctx, conn, models.StreamRequest{
		Run: &models.RunRequest{
			State:    "Discharging",
			Duration: &duration,
			Cells:    []models.CellRequest{{Chemistry: "NMC", Current: 1, Temperature: 25}},
		},
	}))

	var frames []models.StreamFrame
	for {
		var f models.StreamFrame
		require.NoError(t, wsjson.Read(ctx, conn, &f))
		frames = append(frames, f)
		if f.Type != models.FrameSample {
			break
		}
	}

	require.Len(t, frames, 3)
	assert.Equal(t, 4.0, frames[0].Sample.Voltage)
	assert.Equal(t, "100% Remaining", frames[0].Gauge.Label)
	assert.Equal(t, "0% Remaining", frames[1].Gauge.Label)
	assert.Equal(t, models.FrameCompleted, frames[2].Type)

	stored, err := runs.Get(frames[2].RunID)
	require.NoError(t, err)
	assert.Len(t, stored.Series[0].Samples, 2)
}

func TestStream_InputError(t *testing.T) {
	r, _ := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/runs/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.NoError(t, wsjson.Write(ctx, conn, models.StreamRequest{Mode: "pulse"}))

	var f models.StreamFrame
	require.NoError(t, wsjson.Read(ctx, conn, &f))
	assert.Equal(t, models.FrameError, f.Type)
	require.NotNil(t, f.Error)
	assert.Equal(t, "INVALID_INPUT", f.Error.Code)
}
