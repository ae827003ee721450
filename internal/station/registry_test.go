package station_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasentinel/aquasentinel/internal/station"
)

func testStations() []station.Station {
	return []station.Station{
		{ID: "MH-PUN-SW-001", Name: "Mula - Pune", Type: station.TypeSurfaceWater, LandUse: station.LandUseUrban, District: "Pune", Region: "Pune Division", Latitude: 18.5, Longitude: 73.8},
		{ID: "MH-PUN-GW-BS-001", Name: "Baramati Baseline 1", Type: station.TypeGroundwater, AquiferType: station.AquiferBasaltic, District: "Pune", Region: "Pune Division", Latitude: 18.1, Longitude: 74.5},
		{ID: "MH-NGP-GW-TR-001", Name: "Nagpur Trend 1", Type: station.TypeGroundwater, AquiferType: station.AquiferAlluvial, District: "Nagpur", Region: "Nagpur Division", Latitude: 21.1, Longitude: 79.1},
	}
}

func TestNewRegistry(t *testing.T) {
	reg, err := station.NewRegistry(testStations())
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())

	st, err := reg.Get("MH-NGP-GW-TR-001")
	require.NoError(t, err)
	assert.Equal(t, "Nagpur", st.District)

	idx, ok := reg.Index("MH-PUN-GW-BS-001")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "MH-PUN-GW-BS-001", reg.At(idx).ID)

	_, err = reg.Get("missing")
	assert.ErrorIs(t, err, station.ErrStationNotFound)
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	stations := testStations()
	stations = append(stations, stations[0])

	_, err := station.NewRegistry(stations)
	assert.ErrorIs(t, err, station.ErrDuplicateID)
}

func TestNewRegistry_RejectsInvalid(t *testing.T) {
	_, err := station.NewRegistry([]station.Station{{ID: "X", Type: "lake"}})
	assert.ErrorIs(t, err, station.ErrInvalidStation)
}

func TestRegistry_Aggregates(t *testing.T) {
	reg, err := station.NewRegistry(testStations())
	require.NoError(t, err)

	assert.Equal(t, []string{"Nagpur", "Pune"}, reg.Districts())
	assert.Equal(t, []string{"Nagpur Division", "Pune Division"}, reg.Regions())
	assert.Equal(t, map[station.Type]int{
		station.TypeSurfaceWater: 1,
		station.TypeGroundwater:  2,
	}, reg.CountByType())
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	reg, err := station.NewRegistry(testStations())
	require.NoError(t, err)

	all := reg.All()
	all[0].Name = "mutated"

	st, err := reg.Get("MH-PUN-SW-001")
	require.NoError(t, err)
	assert.Equal(t, "Mula - Pune", st.Name)
}

func TestRegistry_BaseParametersNotShared(t *testing.T) {
	stations := testStations()
	stations[0].BaseParameters = map[string]float64{"ph": 7.2}
	reg, err := station.NewRegistry(stations)
	require.NoError(t, err)

	stations[0].BaseParameters["ph"] = 1

	got, err := reg.Get("MH-PUN-SW-001")
	require.NoError(t, err)
	got.BaseParameters["ph"] = 2
	reg.At(0).BaseParameters["ph"] = 3
	reg.All()[0].BaseParameters["ph"] = 4

	again, err := reg.Get("MH-PUN-SW-001")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"ph": 7.2}, again.BaseParameters)

	assert.Nil(t, reg.At(1).BaseParameters)
}
