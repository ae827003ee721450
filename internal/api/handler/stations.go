package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// StationHandler handles station endpoints.
type StationHandler struct {
	query *query.Service
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(q *query.Service) *StationHandler {
	return &StationHandler{query: q}
}

// ListStations handles GET /v1/stations.
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	filter, page, ok := listRequest(w, r)
	if !ok {
		return
	}
	result, err := h.query.ListStations(filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// GetStation handles GET /v1/stations/{stationId}.
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	st, err := h.query.GetStation(chi.URLParam(r, "stationId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, st)
}

// GetCurrentReading handles GET /v1/stations/{stationId}/reading.
func (h *StationHandler) GetCurrentReading(w http.ResponseWriter, r *http.Request) {
	reading, err := h.query.GetCurrentReading(chi.URLParam(r, "stationId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, reading)
}

// GetHistory handles GET /v1/stations/{stationId}/history?limit=N.
func (h *StationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, fieldErr := positiveInt(r, "limit", query.DefaultHistoryLimit)
	if fieldErr != nil {
		response.BadRequest(w, r, "invalid limit", []models.FieldError{*fieldErr})
		return
	}

	id := chi.URLParam(r, "stationId")
	readings, err := h.query.GetHistory(id, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"stationId": id,
		"count":     len(readings),
		"readings":  readings,
	})
}

// ByStatus handles GET /v1/stations/status/{status}.
func (h *StationHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "status")
	status, err := waterquality.ParseStatus(raw)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: status %q", query.ErrInvalidFilter, raw))
		return
	}
	h.list(w, r, func(f query.Filter, p query.PageRequest) (query.Page[query.StationView], error) {
		return h.query.StationsByStatus(status, f, p)
	})
}

// ByWaterClass handles GET /v1/stations/class/{class}.
func (h *StationHandler) ByWaterClass(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "class")
	class, err := waterquality.ParseWaterClass(raw)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: class %q", query.ErrInvalidFilter, raw))
		return
	}
	h.list(w, r, func(f query.Filter, p query.PageRequest) (query.Page[query.StationView], error) {
		return h.query.StationsByWaterClass(class, f, p)
	})
}

// ByType handles GET /v1/stations/type/{type}.
func (h *StationHandler) ByType(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "type")
	t, err := station.ParseType(raw)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: type %q", query.ErrInvalidFilter, raw))
		return
	}
	h.list(w, r, func(f query.Filter, p query.PageRequest) (query.Page[query.StationView], error) {
		return h.query.StationsByType(t, f, p)
	})
}

// ByRegion handles GET /v1/stations/region/{region}.
func (h *StationHandler) ByRegion(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	h.list(w, r, func(f query.Filter, p query.PageRequest) (query.Page[query.StationView], error) {
		return h.query.StationsByRegion(region, f, p)
	})
}

func (h *StationHandler) list(w http.ResponseWriter, r *http.Request, fetch func(query.Filter, query.PageRequest) (query.Page[query.StationView], error)) {
	filter, page, ok := listRequest(w, r)
	if !ok {
		return
	}
	result, err := fetch(filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// Nearby handles GET /v1/stations/nearby?lat=&lon=[&radiusKm=][&limit=],
// closest first.
func (h *StationHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, fieldErrs := parsePoint(r)
	radius := 0.0
	if v := r.URL.Query().Get("radiusKm"); v != "" {
		var err error
		if radius, err = strconv.ParseFloat(v, 64); err != nil || radius <= 0 {
			fieldErrs = append(fieldErrs, models.FieldError{Field: "radiusKm", Message: "must be a positive number", Code: "INVALID"})
		}
	}
	limit, fieldErr := positiveInt(r, "limit", 20)
	if fieldErr != nil {
		fieldErrs = append(fieldErrs, *fieldErr)
	}
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid nearby query", fieldErrs)
		return
	}

	items, err := h.query.Nearby(lat, lon, radius, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []query.NearbyStation{}
	}
	response.JSON(w, r, http.StatusOK, map[string]interface{}{"items": items})
}
