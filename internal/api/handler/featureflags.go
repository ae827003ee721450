package handler

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/api/middleware"
	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/featureflags"
)

// FeatureFlagsHandler handles feature flag endpoints.
type FeatureFlagsHandler struct {
	service *featureflags.Service
	logger  zerolog.Logger
}

// NewFeatureFlagsHandler creates a new FeatureFlagsHandler.
func NewFeatureFlagsHandler(service *featureflags.Service, logger zerolog.Logger) *FeatureFlagsHandler {
	return &FeatureFlagsHandler{service: service, logger: logger}
}

// ListFeatureFlags handles GET /v1/admin/feature-flags.
func (h *FeatureFlagsHandler) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.list(r))
}

// UpsertFeatureFlags handles PUT /v1/admin/feature-flags and returns the
// resulting flag set.
func (h *FeatureFlagsHandler) UpsertFeatureFlags(w http.ResponseWriter, r *http.Request) {
	var req featureflags.FlagUpdateRequest
	if err := response.DecodeJSON(r, &req, false); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}
	if len(req.Updates) == 0 {
		response.BadRequest(w, r, "at least one update is required", []models.FieldError{{
			Field: "updates", Message: "must not be empty", Code: "REQUIRED",
		}})
		return
	}

	flags := make([]*featureflags.Flag, 0, len(req.Updates))
	var fieldErrs []models.FieldError
	for i, u := range req.Updates {
		if strings.TrimSpace(u.Key) == "" {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field: "updates[" + strconv.Itoa(i) + "].key", Message: "must not be empty", Code: "REQUIRED",
			})
			continue
		}
		flags = append(flags, &featureflags.Flag{Key: u.Key, Value: u.Value})
	}
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid flag updates", fieldErrs)
		return
	}

	if err := h.service.SetFlags(r.Context(), flags); err != nil {
		if errors.Is(err, featureflags.ErrInvalidFlagValue) {
			response.BadRequest(w, r, err.Error(), nil)
			return
		}
		h.logger.Error().Err(err).Str("request_id", middleware.GetRequestID(r.Context())).Msg("updating feature flags")
		response.InternalError(w, r, "failed to update feature flags")
		return
	}

	keys := make([]string, len(flags))
	for i, f := range flags {
		keys[i] = f.Key
	}
	h.logger.Info().
		Strs("keys", keys).
		Str("reason", req.Reason).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Msg("feature flags updated")

	response.JSON(w, r, http.StatusOK, h.list(r))
}

// ResetFeatureFlag handles DELETE /v1/admin/feature-flags/{key}.
func (h *FeatureFlagsHandler) ResetFeatureFlag(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.service.ResetFlag(r.Context(), key); err != nil {
		if errors.Is(err, featureflags.ErrFlagNotFound) {
			response.NotFound(w, r, "no override stored for flag "+key)
			return
		}
		h.logger.Error().Err(err).Str("flag", key).Msg("resetting feature flag")
		response.InternalError(w, r, "failed to reset feature flag")
		return
	}
	response.NoContent(w, r)
}

// InvalidateCache handles POST /v1/admin/feature-flags/invalidate.
func (h *FeatureFlagsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCache()
	response.NoContent(w, r)
}

func (h *FeatureFlagsHandler) list(r *http.Request) featureflags.FlagList {
	all := h.service.GetAllFlags(r.Context())
	out := featureflags.FlagList{Items: make([]featureflags.Flag, 0, len(all))}
	for _, f := range all {
		if f != nil {
			out.Items = append(out.Items, *f)
		}
	}
	sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].Key < out.Items[j].Key })
	return out
}
