package station_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasentinel/aquasentinel/internal/station"
)

func TestDecodeRecord_Canonical(t *testing.T) {
	data := []byte(`{
		"station_id": "MH-PUN-SW-001",
		"name": "Mula - Pune",
		"type": "surface_water",
		"monitoring_type": "routine",
		"land_use": "Urban",
		"district": "Pune",
		"region": "Pune Division",
		"latitude": 18.52,
		"longitude": 73.85,
		"water_body": "Mula",
		"population_nearby": 120000
	}`)

	st, err := station.DecodeRecord(data)
	require.NoError(t, err)

	assert.Equal(t, "MH-PUN-SW-001", st.ID)
	assert.Equal(t, station.TypeSurfaceWater, st.Type)
	assert.Equal(t, station.MonitoringRoutine, st.MonitoringType)
	assert.Equal(t, station.LandUseUrban, st.LandUse)
	assert.Equal(t, station.LandUseUrban, st.SubClassification())
	assert.Equal(t, "Mula", st.WaterBody)
	assert.Equal(t, 120000, st.PopulationNearby)
	assert.True(t, st.IsSurfaceWater())
}

func TestDecodeRecord_LegacyKeysAndNestedLocation(t *testing.T) {
	data := []byte(`{
		"id": "MH-NGP-GW-BS-004",
		"stationName": "Kamptee Baseline 4",
		"stationType": "Ground Water",
		"monitoringType": "baseline",
		"aquiferType": "Hard-Rock",
		"wellDepth": "120",
		"location": {
			"latitude": 21.14,
			"longitude": 79.08,
			"district": "Nagpur",
			"region": "Nagpur Division",
			"taluka": "Kamptee"
		},
		"baseParameters": {"ph": 7.4, "nitrates": 12.5, "odor": "none"}
	}`)

	st, err := station.DecodeRecord(data)
	require.NoError(t, err)

	assert.Equal(t, "MH-NGP-GW-BS-004", st.ID)
	assert.Equal(t, station.TypeGroundwater, st.Type)
	assert.Equal(t, station.AquiferHardRock, st.AquiferType)
	assert.Equal(t, station.AquiferHardRock, st.SubClassification())
	assert.Equal(t, "Nagpur", st.District)
	assert.Equal(t, "Kamptee", st.Taluka)
	assert.InDelta(t, 21.14, st.Latitude, 1e-9)
	assert.InDelta(t, 120.0, st.WellDepthM, 1e-9)
	assert.Equal(t, map[string]float64{"ph": 7.4, "nitrates": 12.5}, st.BaseParameters)
}

func TestDecodeRecord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "unknown type",
			data:    `{"station_id":"X-1","type":"ocean","latitude":1,"longitude":1}`,
			wantErr: station.ErrUnknownType,
		},
		{
			name:    "missing id",
			data:    `{"type":"groundwater","latitude":1,"longitude":1}`,
			wantErr: station.ErrInvalidStation,
		},
		{
			name:    "coordinates out of range",
			data:    `{"station_id":"X-2","type":"groundwater","latitude":123,"longitude":1}`,
			wantErr: station.ErrInvalidStation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := station.DecodeRecord([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := station.DecodeRecord([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	for _, in := range []string{"surface_water", "Surface", "SW", "surface water"} {
		got, err := station.ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, station.TypeSurfaceWater, got, in)
	}
	for _, in := range []string{"groundwater", "ground_water", "GW"} {
		got, err := station.ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, station.TypeGroundwater, got, in)
	}
	_, err := station.ParseType("lake")
	assert.ErrorIs(t, err, station.ErrUnknownType)
}
