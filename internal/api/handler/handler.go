// Package handler provides HTTP handlers for the station API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/query"
	"github.com/aquasentinel/aquasentinel/internal/worker"
)

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, query.ErrStationNotFound),
		errors.Is(err, query.ErrNoReading),
		errors.Is(err, query.ErrUnknownParameter),
		errors.Is(err, query.ErrNoStationsInRange):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, query.ErrInvalidFilter), errors.Is(err, query.ErrInvalidPoint):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, worker.ErrAlreadyRunning), errors.Is(err, worker.ErrNotRunning):
		response.Conflict(w, r, err.Error())
	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}

// parseFilter reads district, type, region and search from the query string.
func parseFilter(r *http.Request) (query.Filter, error) {
	q := r.URL.Query()
	return query.ParseFilter(q.Get("district"), q.Get("type"), q.Get("region"), q.Get("search"))
}

// parsePage reads page and pageSize. Sizes above the maximum are clamped
// by the query service.
func parsePage(r *http.Request) (query.PageRequest, []models.FieldError) {
	var (
		page query.PageRequest
		errs []models.FieldError
	)
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, models.FieldError{Field: "page", Message: "must be a positive integer", Code: "INVALID"})
		}
		page.Page = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, models.FieldError{Field: "pageSize", Message: "must be a positive integer", Code: "INVALID"})
		}
		page.PageSize = n
	}
	return page, errs
}

// positiveInt reads an optional positive integer query parameter.
func positiveInt(r *http.Request, key string, fallback int) (int, *models.FieldError) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, &models.FieldError{Field: key, Message: "must be a positive integer", Code: "INVALID"}
	}
	return n, nil
}

// listRequest parses the filter and page shared by listing endpoints and
// writes a 400 when either is invalid.
func listRequest(w http.ResponseWriter, r *http.Request) (query.Filter, query.PageRequest, bool) {
	page, fieldErrs := parsePage(r)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid pagination parameters", fieldErrs)
		return query.Filter{}, query.PageRequest{}, false
	}
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return query.Filter{}, query.PageRequest{}, false
	}
	return filter, page, true
}

// parsePoint reads the required lat and lon query parameters.
func parsePoint(r *http.Request) (lat, lon float64, errs []models.FieldError) {
	q := r.URL.Query()
	read := func(key string) float64 {
		v, err := strconv.ParseFloat(q.Get(key), 64)
		if err != nil {
			errs = append(errs, models.FieldError{Field: key, Message: "must be a decimal degree", Code: "INVALID"})
		}
		return v
	}
	lat, lon = read("lat"), read("lon")
	return lat, lon, errs
}
