package waterquality_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

func TestSeasonAt(t *testing.T) {
	want := map[time.Month]waterquality.Season{
		time.January:   waterquality.Winter,
		time.February:  waterquality.Winter,
		time.March:     waterquality.PreMonsoon,
		time.April:     waterquality.PreMonsoon,
		time.May:       waterquality.PreMonsoon,
		time.June:      waterquality.Monsoon,
		time.July:      waterquality.Monsoon,
		time.August:    waterquality.Monsoon,
		time.September: waterquality.Monsoon,
		time.October:   waterquality.PostMonsoon,
		time.November:  waterquality.PostMonsoon,
		time.December:  waterquality.Winter,
	}
	for month, season := range want {
		got := waterquality.SeasonAt(time.Date(2024, month, 10, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, season, got, month.String())
	}
}

func TestSeasonAt_UsesLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)

	// 20:00 UTC on 31 May is already 1 June in India.
	at := time.Date(2024, time.May, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, waterquality.PreMonsoon, waterquality.SeasonAt(at))
	assert.Equal(t, waterquality.Monsoon, waterquality.SeasonAt(at.In(kolkata)))
}

func TestSeason_Labels(t *testing.T) {
	assert.Equal(t, "Pre-Monsoon", waterquality.PreMonsoon.String())
	assert.Equal(t, "Post-Monsoon", waterquality.PostMonsoon.String())

	s, err := waterquality.ParseSeason("post_monsoon")
	require.NoError(t, err)
	assert.Equal(t, waterquality.PostMonsoon, s)

	_, err = waterquality.ParseSeason("spring")
	assert.Error(t, err)
}

func TestSeasonalFactor(t *testing.T) {
	assert.Equal(t, 2.5, waterquality.SeasonalFactor(waterquality.Monsoon, waterquality.Turbidity))
	assert.Equal(t, 0.7, waterquality.SeasonalFactor(waterquality.Monsoon, waterquality.TDS))
	assert.Equal(t, 4.0, waterquality.SeasonalFactor(waterquality.Monsoon, waterquality.FecalColiform))
	assert.Equal(t, 0.7, waterquality.SeasonalFactor(waterquality.Winter, waterquality.Turbidity))
	assert.Equal(t, 1.0, waterquality.SeasonalFactor(waterquality.Monsoon, waterquality.Arsenic))

	// Monsoon raises sediment and microbial load relative to winter.
	for _, p := range []waterquality.Parameter{waterquality.Turbidity, waterquality.TotalColiform, waterquality.FecalColiform} {
		assert.Greater(t,
			waterquality.SeasonalFactor(waterquality.Monsoon, p),
			waterquality.SeasonalFactor(waterquality.Winter, p), p.String())
	}
}

func TestDiurnalFactor(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		f := waterquality.DiurnalFactor(hour)
		switch {
		case (hour >= 6 && hour <= 9) || (hour >= 18 && hour <= 21):
			assert.GreaterOrEqual(t, f, 1.1, "peak hour %d", hour)
			assert.LessOrEqual(t, f, 1.3, "peak hour %d", hour)
		case hour >= 2 && hour <= 5:
			assert.GreaterOrEqual(t, f, 0.7, "trough hour %d", hour)
			assert.LessOrEqual(t, f, 0.9, "trough hour %d", hour)
		default:
			assert.InDelta(t, 1.0, f, 0.1, "hour %d", hour)
		}
	}
	assert.Equal(t, waterquality.DiurnalFactor(8), waterquality.DiurnalFactor(32))
	assert.Equal(t, waterquality.DiurnalFactor(23), waterquality.DiurnalFactor(-1))
}

func TestTemporalFactor_OnlyDiurnalParametersFollowTimeOfDay(t *testing.T) {
	assert.InDelta(t, 2.5*1.3, waterquality.TemporalFactor(waterquality.Monsoon, 8, waterquality.Turbidity), 1e-9)
	assert.InDelta(t, 0.9, waterquality.TemporalFactor(waterquality.Monsoon, 8, waterquality.Temperature), 1e-9)
	assert.InDelta(t, 1.0, waterquality.TemporalFactor(waterquality.Monsoon, 8, waterquality.PH), 1e-9)
}
