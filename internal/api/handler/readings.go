package handler

import (
	"net/http"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// ReadingHandler handles fleet-wide reading endpoints.
type ReadingHandler struct {
	query *query.Service
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(q *query.Service) *ReadingHandler {
	return &ReadingHandler{query: q}
}

// ListCurrentReadings handles GET /v1/readings.
func (h *ReadingHandler) ListCurrentReadings(w http.ResponseWriter, r *http.Request) {
	filter, page, ok := listRequest(w, r)
	if !ok {
		return
	}
	result, err := h.query.ListCurrentReadings(filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// StationsWithAlerts handles GET /v1/readings/alerts, most alerts first.
func (h *ReadingHandler) StationsWithAlerts(w http.ResponseWriter, r *http.Request) {
	filter, page, ok := listRequest(w, r)
	if !ok {
		return
	}
	result, err := h.query.StationsWithAlerts(filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// Estimate handles GET /v1/readings/estimate?lat=&lon=[&parameter=], an
// inverse distance weighted value from the nearest reporting stations.
func (h *ReadingHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	lat, lon, fieldErrs := parsePoint(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid coordinates", fieldErrs)
		return
	}

	var param *waterquality.Parameter
	if v := r.URL.Query().Get("parameter"); v != "" {
		p, err := waterquality.ParseParameter(v)
		if err != nil {
			response.BadRequest(w, r, err.Error(), []models.FieldError{{
				Field: "parameter", Message: "unknown parameter", Code: "INVALID",
			}})
			return
		}
		param = &p
	}

	est, err := h.query.Estimate(lat, lon, param)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, est)
}
