package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
	"github.com/aquasentinel/aquasentinel/internal/worker"
)

// DigestSource exposes the most recent fleet digest.
type DigestSource interface {
	Last() (worker.Digest, bool)
}

// StatisticsHandler handles aggregate endpoints.
type StatisticsHandler struct {
	query  *query.Service
	digest DigestSource
}

// NewStatisticsHandler creates a new StatisticsHandler. digest may be nil.
func NewStatisticsHandler(q *query.Service, digest DigestSource) *StatisticsHandler {
	return &StatisticsHandler{query: q, digest: digest}
}

// Summary handles GET /v1/statistics/summary.
func (h *StatisticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.query.SummaryStatistics())
}

// Parameter handles GET /v1/statistics/parameters/{parameter}.
func (h *StatisticsHandler) Parameter(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "parameter")
	p, err := waterquality.ParseParameter(raw)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %q", query.ErrUnknownParameter, raw))
		return
	}
	stats, err := h.query.ParameterStatistics(p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, stats)
}

// Worst handles GET /v1/statistics/worst?limit=N, lowest WQI first.
func (h *StatisticsHandler) Worst(w http.ResponseWriter, r *http.Request) {
	n, fieldErr := positiveInt(r, "limit", 10)
	if fieldErr != nil {
		response.BadRequest(w, r, "invalid limit", []models.FieldError{*fieldErr})
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"items": h.query.LowestWQI(n),
	})
}

// Digest handles GET /v1/statistics/digest.
func (h *StatisticsHandler) Digest(w http.ResponseWriter, r *http.Request) {
	if h.digest == nil {
		response.NotFound(w, r, "fleet digest is not configured")
		return
	}
	d, ok := h.digest.Last()
	if !ok {
		response.NotFound(w, r, "no fleet digest has been generated yet")
		return
	}
	response.JSON(w, r, http.StatusOK, d)
}
