package waterquality

// seasonalFactors holds the per-season multipliers. Parameters not listed use 1.0.
var seasonalFactors = [...]map[Parameter]float64{
	PreMonsoon: {
		Turbidity:       0.8,
		TDS:             1.3,
		DissolvedOxygen: 0.9,
		Temperature:     1.2,
		BOD:             1.4,
		COD:             1.5,
		Nitrates:        1.3,
		Phosphates:      1.2,
		Chlorides:       1.3,
		TotalColiform:   1.5,
		FecalColiform:   1.6,
	},
	Monsoon: {
		Turbidity:       2.5,
		TDS:             0.7,
		DissolvedOxygen: 1.1,
		Temperature:     0.9,
		BOD:             0.8,
		COD:             0.8,
		Nitrates:        1.8,
		Phosphates:      2.0,
		Chlorides:       0.7,
		TotalColiform:   3.0,
		FecalColiform:   4.0,
	},
	PostMonsoon: {
		Turbidity:       1.3,
		TDS:             0.9,
		DissolvedOxygen: 1.0,
		Temperature:     1.0,
		BOD:             1.0,
		COD:             1.0,
		Nitrates:        1.2,
		Phosphates:      1.1,
		Chlorides:       0.9,
		TotalColiform:   1.2,
		FecalColiform:   1.3,
	},
	Winter: {
		Turbidity:       0.7,
		TDS:             1.1,
		DissolvedOxygen: 1.2,
		Temperature:     0.8,
		BOD:             0.9,
		COD:             0.9,
		Nitrates:        1.0,
		Phosphates:      0.9,
		Chlorides:       1.1,
		TotalColiform:   0.8,
		FecalColiform:   0.7,
	},
}

// Morning (06-09) and evening (18-21) peaks, overnight trough (02-05).
var diurnalFactors = [24]float64{
	1.0, 0.95, 0.9, 0.8, 0.7, 0.8,
	1.1, 1.2, 1.3, 1.2,
	1.05, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.05,
	1.1, 1.2, 1.3, 1.2,
	1.05, 1.0,
}

// SeasonalFactor returns the seasonal multiplier for a parameter.
func SeasonalFactor(s Season, p Parameter) float64 {
	if s < 0 || int(s) >= len(seasonalFactors) {
		return 1.0
	}
	if f, ok := seasonalFactors[s][p]; ok {
		return f
	}
	return 1.0
}

// DiurnalFactor returns the time-of-day multiplier for an hour in [0, 23].
// Hours outside the range wrap.
func DiurnalFactor(hour int) float64 {
	hour %= 24
	if hour < 0 {
		hour += 24
	}
	return diurnalFactors[hour]
}

// TemporalFactor combines the seasonal and diurnal multipliers for p. Only
// diurnally sensitive parameters follow the time-of-day cycle.
func TemporalFactor(s Season, hour int, p Parameter) float64 {
	f := SeasonalFactor(s, p)
	if p.Diurnal() {
		f *= DiurnalFactor(hour)
	}
	return f
}
