package waterquality

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aquasentinel/aquasentinel/internal/station"
)

// ErrUnknownSubClassification is reported when a station's land use or
// aquifer type has no profile. The fallback profile is used instead.
var ErrUnknownSubClassification = errors.New("unknown station sub-classification")

// Profile names.
const (
	ProfileUrban        = "surface/urban"
	ProfileIndustrial   = "surface/industrial"
	ProfileAgricultural = "surface/agricultural"
	ProfileBasaltic     = "groundwater/basaltic"
	ProfileHardRock     = "groundwater/hard_rock"
	ProfileAlluvial     = "groundwater/alluvial"
)

type valueRange struct{ lo, hi float64 }

// Profile is a set of uniform ranges baseline values are sampled from.
type Profile struct {
	Name   string
	Odor   string
	Taste  string
	ranges map[Parameter]valueRange
}

// Has reports whether the profile models p.
func (pr Profile) Has(p Parameter) bool {
	_, ok := pr.ranges[p]
	return ok
}

// Bounds returns the sampling range for p.
func (pr Profile) Bounds(p Parameter) (lo, hi float64, ok bool) {
	r, ok := pr.ranges[p]
	return r.lo, r.hi, ok
}

// Heavy metal ranges are given in µg/L and stored in mg/L.
func ug(lo, hi float64) valueRange { return valueRange{lo / 1000, hi / 1000} }

var (
	profileUrban = Profile{
		Name: ProfileUrban, Odor: "slight", Taste: "acceptable",
		ranges: map[Parameter]valueRange{
			PH: {7.0, 8.0}, Temperature: {24, 28}, Turbidity: {15, 40},
			TDS: {300, 600}, Conductivity: {450, 900}, DissolvedOxygen: {4.5, 7.0},
			BOD: {3, 8}, COD: {15, 40}, TotalHardness: {120, 280},
			TotalAlkalinity: {100, 250}, Calcium: {35, 80}, Magnesium: {15, 45},
			Sodium: {40, 100}, Potassium: {3, 10}, Chlorides: {50, 200},
			Sulfates: {30, 100}, Bicarbonates: {120, 300}, Nitrates: {5, 20},
			Phosphates: {0.5, 2.0}, Fluoride: {0.3, 1.0}, Iron: {0.1, 0.5},
			Ammonia: {0.3, 1.8}, Arsenic: ug(0, 10), Lead: ug(0, 5),
			Chromium: ug(0, 15), Cadmium: ug(0, 2), Mercury: ug(0, 1),
			TotalColiform: {200, 2000}, FecalColiform: {50, 500}, Color: {5, 20},
		},
	}

	profileIndustrial = Profile{
		Name: ProfileIndustrial, Odor: "moderate", Taste: "slightly objectionable",
		ranges: map[Parameter]valueRange{
			PH: {6.5, 8.5}, Temperature: {26, 32}, Turbidity: {20, 60},
			TDS: {400, 800}, Conductivity: {600, 1200}, DissolvedOxygen: {3.5, 6.0},
			BOD: {5, 15}, COD: {30, 80}, TotalHardness: {150, 350},
			TotalAlkalinity: {120, 300}, Calcium: {45, 100}, Magnesium: {20, 60},
			Sodium: {60, 150}, Potassium: {4, 12}, Chlorides: {100, 350},
			Sulfates: {50, 150}, Bicarbonates: {150, 350}, Nitrates: {8, 30},
			Phosphates: {1.0, 3.5}, Fluoride: {0.4, 1.2}, Iron: {0.2, 1.0},
			Ammonia: {0.5, 2.5}, Arsenic: ug(0, 15), Lead: ug(0, 8),
			Chromium: ug(0, 25), Cadmium: ug(0, 3), Mercury: ug(0, 2),
			TotalColiform: {500, 3000}, FecalColiform: {100, 800}, Color: {10, 30},
		},
	}

	profileAgricultural = Profile{
		Name: ProfileAgricultural, Odor: "none", Taste: "acceptable",
		ranges: map[Parameter]valueRange{
			PH: {7.2, 7.8}, Temperature: {22, 26}, Turbidity: {5, 20},
			TDS: {200, 400}, Conductivity: {300, 600}, DissolvedOxygen: {6.0, 8.5},
			BOD: {1, 4}, COD: {8, 20}, TotalHardness: {80, 200},
			TotalAlkalinity: {80, 200}, Calcium: {25, 60}, Magnesium: {10, 35},
			Sodium: {20, 60}, Potassium: {2, 8}, Chlorides: {20, 100},
			Sulfates: {15, 60}, Bicarbonates: {100, 250}, Nitrates: {2, 10},
			Phosphates: {0.2, 1.0}, Fluoride: {0.2, 0.8}, Iron: {0.05, 0.3},
			Ammonia: {0.1, 0.8}, Arsenic: ug(0, 5), Lead: ug(0, 3),
			Chromium: ug(0, 10), Cadmium: ug(0, 1), Mercury: ug(0, 0.5),
			TotalColiform: {50, 500}, FecalColiform: {10, 150}, Color: {0, 10},
		},
	}

	profileBasaltic = Profile{
		Name: ProfileBasaltic, Odor: "none", Taste: "acceptable",
		ranges: map[Parameter]valueRange{
			PH: {7.5, 8.2}, Temperature: {24, 27}, Turbidity: {1, 5},
			TDS: {300, 600}, Conductivity: {450, 900}, TotalHardness: {150, 350},
			TotalAlkalinity: {120, 280}, Calcium: {40, 90}, Magnesium: {20, 60},
			Sodium: {30, 100}, Potassium: {2, 10}, Chlorides: {50, 150},
			Sulfates: {20, 80}, Bicarbonates: {150, 350}, Nitrates: {10, 40},
			Phosphates: {0.1, 0.8}, Fluoride: {0.5, 2.0}, Iron: {0.1, 0.5},
			Ammonia: {0.05, 0.5}, Arsenic: ug(0, 8), Lead: ug(0, 4),
			Chromium: ug(0, 12), Cadmium: ug(0, 1.5), Mercury: ug(0, 0.8),
			TotalColiform: {0, 50}, FecalColiform: {0, 10}, Color: {0, 5},
		},
	}

	profileHardRock = Profile{
		Name: ProfileHardRock, Odor: "none", Taste: "acceptable",
		ranges: map[Parameter]valueRange{
			PH: {6.8, 7.6}, Temperature: {23, 26}, Turbidity: {1, 8},
			TDS: {200, 500}, Conductivity: {300, 750}, TotalHardness: {100, 280},
			TotalAlkalinity: {90, 220}, Calcium: {30, 70}, Magnesium: {15, 50},
			Sodium: {20, 80}, Potassium: {1, 8}, Chlorides: {30, 120},
			Sulfates: {15, 60}, Bicarbonates: {110, 270}, Nitrates: {15, 50},
			Phosphates: {0.1, 0.6}, Fluoride: {0.3, 1.5}, Iron: {0.2, 1.0},
			Ammonia: {0.05, 0.4}, Arsenic: ug(0, 6), Lead: ug(0, 3),
			Chromium: ug(0, 10), Cadmium: ug(0, 1), Mercury: ug(0, 0.6),
			TotalColiform: {0, 30}, FecalColiform: {0, 5}, Color: {0, 5},
		},
	}

	profileAlluvial = Profile{
		Name: ProfileAlluvial, Odor: "none", Taste: "acceptable",
		ranges: map[Parameter]valueRange{
			PH: {7.0, 7.8}, Temperature: {24, 28}, Turbidity: {2, 10},
			TDS: {250, 550}, Conductivity: {375, 825}, TotalHardness: {120, 300},
			TotalAlkalinity: {100, 250}, Calcium: {35, 80}, Magnesium: {18, 55},
			Sodium: {25, 90}, Potassium: {2, 9}, Chlorides: {40, 130},
			Sulfates: {18, 70}, Bicarbonates: {120, 300}, Nitrates: {20, 60},
			Phosphates: {0.1, 0.7}, Fluoride: {0.4, 1.8}, Iron: {0.15, 0.8},
			Ammonia: {0.05, 0.5}, Arsenic: ug(0, 7), Lead: ug(0, 3.5),
			Chromium: ug(0, 11), Cadmium: ug(0, 1.2), Mercury: ug(0, 0.7),
			TotalColiform: {0, 40}, FecalColiform: {0, 8}, Color: {0, 5},
		},
	}
)

// ProfileFor selects the sampling profile for a station. An unrecognised
// sub-classification returns the fallback profile for the station type
// together with ErrUnknownSubClassification.
func ProfileFor(st station.Station) (Profile, error) {
	sub := st.SubClassification()
	if st.Type == station.TypeGroundwater {
		switch sub {
		case station.AquiferBasaltic:
			return profileBasaltic, nil
		case station.AquiferHardRock:
			return profileHardRock, nil
		case station.AquiferAlluvial, station.AquiferSemiConfined, station.AquiferConfined:
			return profileAlluvial, nil
		}
		return profileHardRock, fmt.Errorf("%w: aquifer %q", ErrUnknownSubClassification, sub)
	}

	switch sub {
	case station.LandUseUrban:
		return profileUrban, nil
	case station.LandUseIndustrial:
		return profileIndustrial, nil
	case station.LandUseAgricultural, station.LandUseForest, station.LandUseRural, station.LandUseSemiUrban:
		return profileAgricultural, nil
	}
	return profileAgricultural, fmt.Errorf("%w: land use %q", ErrUnknownSubClassification, sub)
}

// Baseline is a station's typical parameter values before temporal
// variation, noise and events are applied.
type Baseline struct {
	Profile string
	Values  Values
	Odor    string
	Taste   string
}

// Deriver computes station baselines.
type Deriver struct {
	Logger zerolog.Logger
}

// Derive samples a baseline for st from its profile. Explicit base parameters
// on the station take precedence over sampled values.
func (d Deriver) Derive(st station.Station, rng RandomSource) Baseline {
	profile, err := ProfileFor(st)
	if err != nil {
		d.Logger.Warn().
			Err(err).
			Str("station_id", st.ID).
			Str("fallback_profile", profile.Name).
			Msg("using fallback baseline profile")
	}

	b := Baseline{Profile: profile.Name, Odor: profile.Odor, Taste: profile.Taste}
	for _, p := range Parameters() {
		r, ok := profile.ranges[p]
		if !ok {
			continue
		}
		if p.Precision() == PrecisionInteger {
			b.Values.Set(p, float64(uniformInt(rng, int(r.lo), int(r.hi))))
			continue
		}
		b.Values.Set(p, uniform(rng, r.lo, r.hi))
	}

	if len(st.BaseParameters) > 0 {
		overrides, unknown := ValuesFromMap(st.BaseParameters)
		overrides.Each(func(p Parameter, x float64) {
			b.Values.Set(p, x)
		})
		if len(unknown) > 0 {
			d.Logger.Warn().
				Str("station_id", st.ID).
				Strs("keys", unknown).
				Msg("ignoring unknown base parameters")
		}
	}
	return b
}

// DeriveBaseline is Deriver.Derive with logging disabled.
func DeriveBaseline(st station.Station, rng RandomSource) Baseline {
	return Deriver{Logger: zerolog.Nop()}.Derive(st, rng)
}
