package handler

import (
	"net/http"
	"time"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/worker"
)

// maxIntervalSeconds caps the tick interval accepted over HTTP at one day.
const maxIntervalSeconds = 86400

// SimulationHandler handles simulation control endpoints.
type SimulationHandler struct {
	controller worker.Controller
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(c worker.Controller) *SimulationHandler {
	return &SimulationHandler{controller: c}
}

// Status handles GET /v1/simulation.
func (h *SimulationHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.controller.Status()
	m := st.Metrics

	var avg time.Duration
	if m.TotalTicks > 0 {
		avg = m.TotalDuration / time.Duration(m.TotalTicks)
	}

	response.JSON(w, r, http.StatusOK, models.SimulationStatus{
		State:           st.State.String(),
		IntervalSeconds: int(st.Interval / time.Second),
		Stations:        st.Stations,
		LastUpdate:      models.TimestampPtr(m.LastResult.Timestamp),
		Metrics: models.TickStatistics{
			TotalTicks:           m.TotalTicks,
			ManualTicks:          m.ManualTicks,
			TotalStationsUpdated: m.TotalStationsUpdated,
			TotalFailures:        m.TotalFailures,
			TotalSkipped:         m.TotalSkipped,
			LastTickAt:           models.TimestampPtr(m.LastTickAt),
			LastTickDurationMs:   m.LastTickDuration.Milliseconds(),
			AverageTickMs:        avg.Milliseconds(),
		},
	})
}

// Start handles POST /v1/simulation/start. The body is optional.
func (h *SimulationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartSimulationRequest
	if err := response.DecodeJSON(r, &req, true); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	if req.IntervalSeconds < 0 || req.IntervalSeconds > maxIntervalSeconds {
		response.BadRequest(w, r, "invalid interval", []models.FieldError{{
			Field:   "intervalSeconds",
			Message: "must be 0 for the configured default or between 1 and 86400",
			Code:    "OUT_OF_RANGE",
		}})
		return
	}

	result, err := h.controller.Start(r.Context(), time.Duration(req.IntervalSeconds)*time.Second)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, refreshResponse("simulation started", result))
}

// Stop handles POST /v1/simulation/stop.
func (h *SimulationHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Stop(); err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.MessageResponse{Message: "simulation stopped"})
}

// Refresh handles POST /v1/simulation/refresh, running one tick now.
func (h *SimulationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result := h.controller.Refresh(r.Context())
	response.JSON(w, r, http.StatusOK, refreshResponse("readings refreshed", result))
}

func refreshResponse(msg string, result worker.RefreshResult) models.RefreshResponse {
	return models.RefreshResponse{
		Message:         msg,
		Timestamp:       models.Timestamp(result.Timestamp),
		StationsUpdated: result.StationsUpdated,
		Failed:          result.Failed,
		Skipped:         result.Skipped,
		PollutionEvents: result.PollutionEvents,
	}
}
