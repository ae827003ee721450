package waterquality_test

import (
	"time"

	"github.com/aquasentinel/aquasentinel/internal/station"
	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

// fixedRandom replays a fixed sequence of floats.
type fixedRandom struct {
	floats []float64
	i      int
}

func (f *fixedRandom) Float64() float64 {
	v := f.floats[f.i%len(f.floats)]
	f.i++
	return v
}

func (f *fixedRandom) IntN(n int) int {
	return int(f.Float64() * float64(n))
}

// midpoint makes every noise draw exactly neutral.
func midpoint() *fixedRandom {
	return &fixedRandom{floats: []float64{0.5}}
}

func values(kv map[waterquality.Parameter]float64) waterquality.Values {
	var v waterquality.Values
	for p, x := range kv {
		v.Set(p, x)
	}
	return v
}

func surfaceStation(landUse string) station.Station {
	return station.Station{
		ID:        "MH-PUN-SW-001",
		Name:      "Mula - Pune",
		Type:      station.TypeSurfaceWater,
		LandUse:   landUse,
		District:  "Pune",
		Region:    "Pune Division",
		Latitude:  18.52,
		Longitude: 73.85,
	}
}

func groundwaterStation(aquifer string) station.Station {
	return station.Station{
		ID:          "MH-PUN-GW-BS-001",
		Name:        "Baramati Baseline 1",
		Type:        station.TypeGroundwater,
		AquiferType: aquifer,
		District:    "Pune",
		Region:      "Pune Division",
		Latitude:    18.15,
		Longitude:   74.58,
	}
}

func noEvents() *waterquality.Synthesizer {
	cfg := waterquality.DefaultSynthesizerConfig()
	cfg.Events = waterquality.EventInjector{}
	return waterquality.NewSynthesizer(cfg)
}

var (
	july   = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
	winter = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
)
