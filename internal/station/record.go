package station

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record key aliases. The first key is the canonical one; the others are the
// spellings found in older station exports.
var (
	keysID                = []string{"station_id", "id", "stationId", "stationCode"}
	keysName              = []string{"name", "station_name", "stationName"}
	keysType              = []string{"type", "station_type", "stationType"}
	keysMonitoringType    = []string{"monitoring_type", "monitoringType"}
	keysLandUse           = []string{"land_use", "landUse"}
	keysAquiferType       = []string{"aquifer_type", "aquiferType"}
	keysDistrict          = []string{"district"}
	keysTaluka            = []string{"taluka", "tehsil"}
	keysRegion            = []string{"region", "division"}
	keysLatitude          = []string{"latitude", "lat"}
	keysLongitude         = []string{"longitude", "lon", "lng"}
	keysAltitude          = []string{"altitude", "elevation"}
	keysWaterBody         = []string{"water_body", "waterBody"}
	keysLaboratory        = []string{"laboratory", "lab"}
	keysSamplingFrequency = []string{"sampling_frequency", "samplingFrequency"}
	keysDesignatedUse     = []string{"designated_use", "designatedUse"}
	keysWellType          = []string{"well_type", "wellType"}
	keysWellDepth         = []string{"well_depth_m", "wellDepth", "well_depth"}
	keysPopulation        = []string{"population_nearby", "populationNearby"}
	keysBaseParameters    = []string{"base_parameters", "baseParameters"}
	keysLocation          = []string{"location"}
)

type record map[string]json.RawMessage

// DecodeRecord translates one raw station record into a Station.
// Legacy and nested key layouts are resolved here and nowhere else.
func DecodeRecord(data []byte) (Station, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Station{}, fmt.Errorf("decoding station record: %w", err)
	}

	// Older exports nest coordinates and administrative fields under "location".
	if raw, ok := rec.lookup(keysLocation); ok {
		var loc record
		if err := json.Unmarshal(raw, &loc); err == nil {
			for k, v := range loc {
				if _, exists := rec[k]; !exists {
					rec[k] = v
				}
			}
		}
	}

	st := Station{
		ID:                rec.str(keysID),
		Name:              rec.str(keysName),
		MonitoringType:    MonitoringType(strings.ToLower(rec.str(keysMonitoringType))),
		LandUse:           normalizeClass(rec.str(keysLandUse)),
		AquiferType:       normalizeClass(rec.str(keysAquiferType)),
		District:          rec.str(keysDistrict),
		Taluka:            rec.str(keysTaluka),
		Region:            rec.str(keysRegion),
		Latitude:          rec.num(keysLatitude),
		Longitude:         rec.num(keysLongitude),
		Altitude:          rec.num(keysAltitude),
		WaterBody:         rec.str(keysWaterBody),
		Laboratory:        rec.str(keysLaboratory),
		SamplingFrequency: rec.str(keysSamplingFrequency),
		DesignatedUse:     rec.str(keysDesignatedUse),
		WellType:          rec.str(keysWellType),
		WellDepthM:        rec.num(keysWellDepth),
		PopulationNearby:  int(rec.num(keysPopulation)),
	}

	t, err := ParseType(rec.str(keysType))
	if err != nil {
		return Station{}, fmt.Errorf("station %q: %w", st.ID, err)
	}
	st.Type = t

	if raw, ok := rec.lookup(keysBaseParameters); ok {
		st.BaseParameters = decodeBaseParameters(raw)
	}

	if err := st.Validate(); err != nil {
		return Station{}, fmt.Errorf("station %q: %w", st.ID, err)
	}
	return st, nil
}

func (r record) lookup(keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func (r record) str(keys []string) string {
	raw, ok := r.lookup(keys)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	// Numeric ids show up in some exports.
	return strings.Trim(string(raw), `"`)
}

func (r record) num(keys []string) float64 {
	raw, ok := r.lookup(keys)
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64); perr == nil {
			return parsed
		}
	}
	return 0
}

// decodeBaseParameters keeps only numeric entries. Qualitative entries such
// as odor and taste are derived from the profile instead.
func decodeBaseParameters(raw json.RawMessage) map[string]float64 {
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	out := make(map[string]float64, len(values))
	for k, v := range values {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeClass(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	switch s {
	case "hard-rock", "hardrock":
		return AquiferHardRock
	case "semi-confined", "semiconfined":
		return AquiferSemiConfined
	case "semi_urban", "semiurban":
		return LandUseSemiUrban
	}
	return s
}
