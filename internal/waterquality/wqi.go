package waterquality

import (
	"math"
)

// Weight is the contribution of one parameter to the index.
type Weight struct {
	Parameter Parameter
	Weight    float64
}

// Weights is an ordered weight set summing to 1.0.
type Weights []Weight

// CPCBWeights is the four-parameter CPCB index.
var CPCBWeights = Weights{
	{DissolvedOxygen, 0.31},
	{FecalColiform, 0.28},
	{PH, 0.22},
	{BOD, 0.19},
}

// ExtendedWeights adds physical, nutrient and drinking water parameters to the
// CPCB set.
var ExtendedWeights = Weights{
	{DissolvedOxygen, 0.15},
	{FecalColiform, 0.15},
	{PH, 0.10},
	{BOD, 0.12},
	{Turbidity, 0.10},
	{TDS, 0.10},
	{Nitrates, 0.08},
	{TotalColiform, 0.10},
	{Fluoride, 0.05},
	{Iron, 0.05},
}

// WQI method names.
const (
	MethodCPCB     = "cpcb"
	MethodExtended = "extended"
)

// WeightsFor returns the weight set for a method name. Unknown names use CPCB.
func WeightsFor(method string) Weights {
	if method == MethodExtended {
		return ExtendedWeights
	}
	return CPCBWeights
}

// DOSaturationConstant is the reference DO concentration for saturation
// percentage when temperature compensation is off.
const DOSaturationConstant = 6.5

// Index is the scored result for one set of values.
type Index struct {
	WQI            float64
	SubIndices     map[Parameter]float64
	Classification Category
	WaterClass     WaterClass
	Status         Status
}

// Engine computes water quality indices. The zero value uses CPCB weights.
type Engine struct {
	Weights Weights

	// TemperatureCompensation replaces the constant DO reference with the
	// temperature dependent saturation concentration when temperature is known.
	TemperatureCompensation bool
}

// NewEngine creates an engine for the given method.
func NewEngine(method string) Engine {
	return Engine{Weights: WeightsFor(method)}
}

// Compute scores values. Parameters missing from values are left out and the
// remaining weights renormalised. With no contributing parameters the index is 0.
func (e Engine) Compute(v Values) Index {
	weights := e.Weights
	if len(weights) == 0 {
		weights = CPCBWeights
	}

	subs := make(map[Parameter]float64, len(weights))
	var sum, total float64
	for _, w := range weights {
		si, ok := e.SubIndex(w.Parameter, v)
		if !ok {
			continue
		}
		subs[w.Parameter] = si
		sum += si * w.Weight
		total += w.Weight
	}

	wqi := 0.0
	if total > 0 {
		wqi = sum / total
	}
	wqi = roundTo(math.Min(math.Max(wqi, 0), 100), 2)

	return Index{
		WQI:            wqi,
		SubIndices:     subs,
		Classification: CategoryFor(wqi),
		WaterClass:     WaterClassFor(wqi),
		Status:         StatusFor(wqi),
	}
}

// SubIndex scores a single parameter in [0, 100]. It returns false when the
// parameter is absent or has no scoring function.
func (e Engine) SubIndex(p Parameter, v Values) (float64, bool) {
	x, ok := v.Get(p)
	if !ok {
		return 0, false
	}
	switch p {
	case DissolvedOxygen:
		ref := DOSaturationConstant
		if e.TemperatureCompensation {
			if t, ok := v.Get(Temperature); ok {
				ref = DOSaturation(t)
			}
		}
		return DOSubIndex(x / ref * 100), true
	case FecalColiform:
		return FecalColiformSubIndex(x), true
	case PH:
		return PHSubIndex(x), true
	case BOD:
		return BODSubIndex(x), true
	case Turbidity:
		return banded(x, 5, 100, 10, 80, 50), true
	case TDS:
		return banded(x, 500, 100, 1000, 75, 50), true
	case Nitrates:
		return banded(x, 10, 100, 45, 70, 40), true
	case TotalColiform:
		return banded(x, 50, 100, 500, 70, 40), true
	case Fluoride:
		return FluorideSubIndex(x), true
	case Iron:
		return banded(x, 0.3, 100, 1.0, 75, 50), true
	}
	return 0, false
}

// DOSaturation returns the saturation DO concentration in mg/L of fresh water
// at temperature t in °C.
func DOSaturation(t float64) float64 {
	return 14.652 - 0.41022*t + 0.007991*t*t - 0.000077774*t*t*t
}

// DOSubIndex scores dissolved oxygen from its saturation percentage.
func DOSubIndex(saturation float64) float64 {
	var si float64
	switch {
	case saturation <= 40:
		si = 0.18 + 0.66*saturation
	case saturation <= 100:
		si = -13.55 + 1.17*saturation
	case saturation <= 140:
		si = 163.34 - 0.62*saturation
	default:
		si = 50
	}
	return clampIndex(si)
}

// FecalColiformSubIndex scores fecal coliform in MPN/100mL.
func FecalColiformSubIndex(fc float64) float64 {
	var si float64
	switch {
	case fc < 1:
		si = 97
	case fc <= 1000:
		si = 97.2 - 26.6*math.Log10(fc)
	case fc <= 100000:
		si = 42.33 - 7.75*math.Log10(fc)
	default:
		si = 2
	}
	return clampIndex(si)
}

// PHSubIndex scores pH.
func PHSubIndex(ph float64) float64 {
	var si float64
	switch {
	case ph >= 2 && ph < 5:
		si = 16.1 + 7.35*ph
	case ph >= 5 && ph < 7.3:
		si = -142.67 + 33.5*ph
	case ph >= 7.3 && ph <= 10:
		si = 316.96 - 29.85*ph
	case ph > 10 && ph <= 12:
		si = 96.17 - 8.0*ph
	default:
		si = 0
	}
	return clampIndex(si)
}

// BODSubIndex scores biochemical oxygen demand in mg/L.
func BODSubIndex(bod float64) float64 {
	var si float64
	switch {
	case bod >= 0 && bod <= 10:
		si = 96.67 - 7.0*bod
	case bod > 10 && bod <= 30:
		si = 38.9 - 1.23*bod
	default:
		si = 2
	}
	return clampIndex(si)
}

// FluorideSubIndex scores fluoride, which is harmful both below and above the
// optimal band.
func FluorideSubIndex(f float64) float64 {
	switch {
	case f >= 0.6 && f <= 1.5:
		return 100
	case f <= 2.0:
		return 70
	default:
		return 40
	}
}

// banded scores lower-is-better parameters with two inclusive limits.
func banded(x, limit1, score1, limit2, score2, rest float64) float64 {
	switch {
	case x <= limit1:
		return score1
	case x <= limit2:
		return score2
	default:
		return rest
	}
}

func clampIndex(si float64) float64 {
	return math.Min(math.Max(si, 0), 100)
}
