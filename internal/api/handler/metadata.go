package handler

import (
	"net/http"

	"github.com/aquasentinel/aquasentinel/internal/api/models"
	"github.com/aquasentinel/aquasentinel/internal/api/response"
	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	registry *station.Registry
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(registry *station.Registry) *MetadataHandler {
	return &MetadataHandler{registry: registry}
}

// GetEnums handles GET /v1/metadata/enums - values accepted by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		StationTypes:  []string{string(station.TypeSurfaceWater), string(station.TypeGroundwater)},
		Seasons:       []string{},
		WQIMethods:    []string{waterquality.MethodCPCB, waterquality.MethodExtended},
		AlertSeverity: []string{string(waterquality.SeverityWarning), string(waterquality.SeverityCritical)},
		Regions:       []string{},
		Districts:     []string{},
	}
	for _, s := range waterquality.Statuses() {
		enums.Statuses = append(enums.Statuses, s.String())
	}
	for _, c := range waterquality.WaterClasses() {
		enums.WaterClasses = append(enums.WaterClasses, c.Code())
	}
	for _, s := range []waterquality.Season{waterquality.PreMonsoon, waterquality.Monsoon, waterquality.PostMonsoon, waterquality.Winter} {
		enums.Seasons = append(enums.Seasons, s.String())
	}
	for _, p := range waterquality.Parameters() {
		enums.Parameters = append(enums.Parameters, p.String())
	}
	if h.registry != nil {
		enums.Regions = h.registry.Regions()
		enums.Districts = h.registry.Districts()
	}
	response.JSON(w, r, http.StatusOK, enums)
}
