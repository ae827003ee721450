package station

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
)

// NetworkConfig controls synthetic network generation.
type NetworkConfig struct {
	// Seed makes generation reproducible.
	Seed uint64

	// SurfaceWater is the number of routine surface water stations.
	// Default: 150
	SurfaceWater int

	// Baseline is the number of groundwater baseline stations.
	// Default: 3370
	Baseline int

	// Trend is the number of groundwater trend stations.
	// Default: 975
	Trend int

	// Districts to spread stations across. Default: Districts.
	Districts []District
}

// DefaultNetworkConfig returns the full-scale state network.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Seed:         42,
		SurfaceWater: 150,
		Baseline:     3370,
		Trend:        975,
		Districts:    Districts,
	}
}

// GenerateNetwork builds a deterministic station network. Stations are
// allocated to districts in proportion to their laboratory count.
func GenerateNetwork(cfg NetworkConfig) []Station {
	if len(cfg.Districts) == 0 {
		cfg.Districts = Districts
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	stations := make([]Station, 0, cfg.SurfaceWater+cfg.Baseline+cfg.Trend)
	stations = append(stations, generateSurface(rng, cfg.Districts, cfg.SurfaceWater)...)
	stations = append(stations, generateGroundwater(rng, cfg.Districts, cfg.Baseline, MonitoringBaseline)...)
	stations = append(stations, generateGroundwater(rng, cfg.Districts, cfg.Trend, MonitoringTrend)...)
	return stations
}

// allocate splits target stations across districts by lab count, with at
// least one station per district and the remainder going to the largest.
func allocate(districts []District, target int) map[string]int {
	out := make(map[string]int, len(districts))
	if target <= 0 {
		return out
	}

	totalLabs := 0
	for _, d := range districts {
		totalLabs += len(d.Labs)
	}
	if totalLabs == 0 {
		totalLabs = len(districts)
	}

	names := make([]string, 0, len(districts))
	labs := make(map[string]int, len(districts))
	for _, d := range districts {
		names = append(names, d.Name)
		labs[d.Name] = max(len(d.Labs), 1)
	}
	sort.Strings(names)

	remaining := target
	for _, name := range names {
		n := max(target*labs[name]/totalLabs, 1)
		out[name] = n
		remaining -= n
	}

	bySize := append([]string(nil), names...)
	sort.SliceStable(bySize, func(i, j int) bool { return labs[bySize[i]] > labs[bySize[j]] })
	for remaining > 0 {
		for _, name := range bySize {
			if remaining == 0 {
				break
			}
			out[name]++
			remaining--
		}
	}
	// The one-station minimum can overshoot small targets.
	for remaining < 0 {
		trimmed := false
		for _, name := range bySize {
			if remaining == 0 {
				break
			}
			if out[name] > 1 {
				out[name]--
				remaining++
				trimmed = true
			}
		}
		if !trimmed {
			break
		}
	}
	return out
}

func generateSurface(rng *rand.Rand, districts []District, target int) []Station {
	alloc := allocate(districts, target)
	landUses := []string{LandUseAgricultural, LandUseUrban, LandUseIndustrial, LandUseForest}
	uses := []string{"drinking", "irrigation", "industrial", "bathing"}

	var out []Station
	for _, d := range districts {
		bodies := append(append([]string(nil), d.Rivers...), d.WaterBodies...)
		for i := 0; i < alloc[d.Name]; i++ {
			body := fmt.Sprintf("Water Body %d", i+1)
			if len(bodies) > 0 {
				body = bodies[i%len(bodies)]
			}
			lat, lon := offset(rng, d.CenterLat, d.CenterLon, 40)
			out = append(out, Station{
				ID:                stationID(d.Code, TypeSurfaceWater, MonitoringRoutine, i+1),
				Name:              body + " - " + d.Name,
				Type:              TypeSurfaceWater,
				MonitoringType:    MonitoringRoutine,
				LandUse:           pick(rng, landUses),
				District:          d.Name,
				Region:            d.Region,
				Latitude:          lat,
				Longitude:         lon,
				Altitude:          float64(200 + rng.IntN(601)),
				WaterBody:         body,
				Laboratory:        firstOr(d.Labs, d.Name+" District Lab"),
				SamplingFrequency: "monthly",
				DesignatedUse:     pick(rng, uses),
				PopulationNearby:  1000 + rng.IntN(499001),
			})
		}
	}
	return out
}

func generateGroundwater(rng *rand.Rand, districts []District, target int, mt MonitoringType) []Station {
	alloc := allocate(districts, target)

	label, frequency, designated := "Baseline", "quarterly", ""
	wellTypes := []string{"dug_well", "bore_well", "tube_well"}
	landUses := []string{LandUseAgricultural, LandUseRural, LandUseUrban, LandUseSemiUrban}
	aquifers := []string{AquiferAlluvial, AquiferBasaltic, AquiferHardRock, AquiferSemiConfined}
	if mt == MonitoringTrend {
		label, frequency, designated = "Trend", "bi-annual", "monitoring"
		wellTypes = []string{"bore_well", "tube_well", "piezometer"}
		landUses = []string{LandUseAgricultural, LandUseRural, LandUseUrban}
		aquifers = []string{AquiferAlluvial, AquiferBasaltic, AquiferHardRock, AquiferConfined}
	}

	var out []Station
	for _, d := range districts {
		for i := 0; i < alloc[d.Name]; i++ {
			lab := d.Name + " District Lab"
			if len(d.Labs) > 0 {
				lab = d.Labs[i%len(d.Labs)]
			}
			taluka := d.Name
			if idx := strings.Index(lab, "SDL "); idx >= 0 {
				taluka = lab[idx+len("SDL "):]
			}

			wellType := pick(rng, wellTypes)
			depth := 50 + rng.IntN(201)
			if wellType == "dug_well" {
				depth = 10 + rng.IntN(71)
			} else if mt == MonitoringBaseline {
				depth = 30 + rng.IntN(171)
			}

			use := designated
			if use == "" {
				use = pick(rng, []string{"drinking", "irrigation", "domestic"})
			}

			lat, lon := offset(rng, d.CenterLat, d.CenterLon, 50)
			out = append(out, Station{
				ID:                stationID(d.Code, TypeGroundwater, mt, i+1),
				Name:              fmt.Sprintf("%s %s %d", taluka, label, i+1),
				Type:              TypeGroundwater,
				MonitoringType:    mt,
				LandUse:           pick(rng, landUses),
				AquiferType:       pick(rng, aquifers),
				District:          d.Name,
				Taluka:            taluka,
				Region:            d.Region,
				Latitude:          lat,
				Longitude:         lon,
				Altitude:          float64(300 + rng.IntN(601)),
				Laboratory:        lab,
				SamplingFrequency: frequency,
				DesignatedUse:     use,
				WellType:          wellType,
				WellDepthM:        float64(depth),
				PopulationNearby:  500 + rng.IntN(49501),
			})
		}
	}
	return out
}

// stationID formats ids as MH-PUN-SW-001, MH-PUN-GW-BS-001 or MH-PUN-GW-TR-001.
func stationID(code string, t Type, mt MonitoringType, n int) string {
	if t == TypeSurfaceWater {
		return fmt.Sprintf("MH-%s-SW-%03d", code, n)
	}
	suffix := "BS"
	if mt == MonitoringTrend {
		suffix = "TR"
	}
	return fmt.Sprintf("MH-%s-GW-%s-%03d", code, suffix, n)
}

// offset places a point within maxKm of the center, rounded to 4 decimals.
func offset(rng *rand.Rand, lat, lon, maxKm float64) (float64, float64) {
	dLat := (rng.Float64()*2 - 1) * maxKm / 111.0
	dLon := (rng.Float64()*2 - 1) * maxKm / (111.0 * 0.9)
	return round4(lat + dLat), round4(lon + dLon)
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}

func firstOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[0]
}
