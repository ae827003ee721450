package handler

import (
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/provider/resilience"
	"github.com/aquasentinel/aquasentinel/internal/worker"
)

// FleetClock reports when the fleet last received readings.
type FleetClock interface {
	LastUpdate() time.Time
}

// OpsConfig holds the dependencies of an OpsHandler.
type OpsConfig struct {
	Version   string
	BuildTime string
	Fleet     FleetClock
	Scheduler worker.Controller
	Providers *resilience.Registry
	Clock     clockwork.Clock

	// StaleAfter marks the fleet degraded when no tick has landed for this
	// long. Zero disables the check.
	StaleAfter time.Duration
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &OpsHandler{cfg: cfg}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.cfg.Clock.Now()),
		Details: map[string]interface{}{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	})
}

// ReadinessCheck handles GET /v1/ops/ready. The service is ready once the
// first tick has populated the fleet.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	now := h.cfg.Clock.Now()
	if h.cfg.Fleet == nil || h.cfg.Fleet.LastUpdate().IsZero() {
		response.JSON(w, r, http.StatusServiceUnavailable, models.Health{
			Status:  models.HealthStatusFail,
			Time:    models.Timestamp(now),
			Details: map[string]interface{}{"reason": "no readings have been generated yet"},
		})
		return
	}
	response.JSON(w, r, http.StatusOK, models.Health{
		Status:  models.HealthStatusOK,
		Time:    models.Timestamp(now),
		Details: map[string]interface{}{"lastUpdate": h.cfg.Fleet.LastUpdate()},
	})
}

// SystemStatus handles GET /v1/ops/status - subsystem and upstream status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(h.cfg.Clock.Now()),
		Subsystems: []models.SubsystemStatus{h.schedulerStatus(), h.fleetStatus()},
		Providers:  h.providerStatuses(),
	}

	for _, s := range status.Subsystems {
		status.Status = worse(status.Status, s.Status)
	}
	for _, p := range status.Providers {
		status.Status = worse(status.Status, p.Status)
	}
	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) schedulerStatus() models.SubsystemStatus {
	s := models.SubsystemStatus{Name: "scheduler", Status: models.HealthStatusOK}
	if h.cfg.Scheduler == nil {
		s.Status = models.HealthStatusFail
		s.Detail = strPtr("not configured")
		return s
	}
	st := h.cfg.Scheduler.Status()
	detail := st.State.String()
	if st.State == worker.StateRunning {
		detail += ", every " + st.Interval.String()
	}
	s.Detail = &detail
	return s
}

func (h *OpsHandler) fleetStatus() models.SubsystemStatus {
	s := models.SubsystemStatus{Name: "fleet", Status: models.HealthStatusOK}
	if h.cfg.Fleet == nil {
		s.Status = models.HealthStatusFail
		s.Detail = strPtr("not configured")
		return s
	}
	last := h.cfg.Fleet.LastUpdate()
	switch {
	case last.IsZero():
		s.Status = models.HealthStatusDegraded
		s.Detail = strPtr("no readings yet")
	case h.cfg.StaleAfter > 0 && h.cfg.Clock.Since(last) > h.cfg.StaleAfter:
		s.Status = models.HealthStatusDegraded
		s.Detail = strPtr("readings are stale, last update " + last.Format(time.RFC3339))
	default:
		s.Detail = strPtr("last update " + last.Format(time.RFC3339))
	}
	return s
}

func (h *OpsHandler) providerStatuses() []models.ProviderStatus {
	out := []models.ProviderStatus{}
	if h.cfg.Providers == nil {
		return out
	}
	for _, health := range h.cfg.Providers.GetAllHealth() {
		p := models.ProviderStatus{
			Provider:     health.Name,
			CircuitState: health.CircuitState.String(),
			Status:       models.HealthStatusOK,
		}
		switch {
		case health.IsUnhealthy():
			p.Status = models.HealthStatusFail
		case health.IsDegraded():
			p.Status = models.HealthStatusDegraded
		}
		if health.LastSuccessAt != nil {
			p.LastSuccessAt = models.TimestampPtr(*health.LastSuccessAt)
		}
		if health.LastFailureAt != nil {
			p.LastFailureAt = models.TimestampPtr(*health.LastFailureAt)
		}
		if health.LastError != "" {
			p.Message = strPtr(health.LastError)
		}
		out = append(out, p)
	}
	return out
}

var healthRank = map[models.HealthStatus]int{
	models.HealthStatusOK:       0,
	models.HealthStatusDegraded: 1,
	models.HealthStatusFail:     2,
}

func worse(a, b models.HealthStatus) models.HealthStatus {
	if healthRank[b] > healthRank[a] {
		return b
	}
	return a
}

func strPtr(s string) *string { return &s }
