package waterquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

func goldenValues() waterquality.Values {
	return values(map[waterquality.Parameter]float64{
		waterquality.PH:              7.6,
		waterquality.BOD:             2.2,
		waterquality.DissolvedOxygen: 5.5,
		waterquality.FecalColiform:   6,
	})
}

func TestEngine_Golden(t *testing.T) {
	idx := waterquality.Engine{}.Compute(goldenValues())

	assert.InDelta(t, 83.17, idx.WQI, 0.005)
	assert.Equal(t, waterquality.CategoryGoodToExcellent, idx.Classification)
	assert.Equal(t, "Good to Excellent", idx.Classification.String())
	assert.Equal(t, waterquality.ClassB, idx.WaterClass)
	assert.Equal(t, waterquality.StatusExcellent, idx.Status)

	assert.InDelta(t, 85.45, idx.SubIndices[waterquality.DissolvedOxygen], 0.01)
	assert.InDelta(t, 76.50, idx.SubIndices[waterquality.FecalColiform], 0.01)
	assert.InDelta(t, 90.10, idx.SubIndices[waterquality.PH], 0.01)
	assert.InDelta(t, 81.27, idx.SubIndices[waterquality.BOD], 0.01)
}

func TestEngine_RenormalisesMissingParameters(t *testing.T) {
	v := goldenValues()
	v.Delete(waterquality.DissolvedOxygen)
	v.Delete(waterquality.BOD)

	idx := waterquality.Engine{}.Compute(v)

	// (0.22 * 90.10 + 0.28 * 76.50) / 0.50
	assert.InDelta(t, 82.48, idx.WQI, 0.01)
	assert.Len(t, idx.SubIndices, 2)
}

func TestEngine_NoContributingParameters(t *testing.T) {
	idx := waterquality.Engine{}.Compute(values(map[waterquality.Parameter]float64{waterquality.Arsenic: 0.001}))

	assert.Equal(t, 0.0, idx.WQI)
	assert.Equal(t, waterquality.ClassUnfit, idx.WaterClass)
	assert.Equal(t, waterquality.StatusVeryPoor, idx.Status)
}

func TestEngine_AlwaysWithinBounds(t *testing.T) {
	engines := []waterquality.Engine{
		waterquality.NewEngine(waterquality.MethodCPCB),
		waterquality.NewEngine(waterquality.MethodExtended),
		{Weights: waterquality.ExtendedWeights, TemperatureCompensation: true},
	}
	rng := waterquality.NewRandom(7)

	for i := 0; i < 2000; i++ {
		var v waterquality.Values
		for _, p := range waterquality.Parameters() {
			lo, hi := p.Range()
			v.Set(p, lo+rng.Float64()*(hi-lo))
		}
		for _, e := range engines {
			idx := e.Compute(v)
			assert.GreaterOrEqual(t, idx.WQI, 0.0)
			assert.LessOrEqual(t, idx.WQI, 100.0)
		}
	}
}

func TestWeights_SumToOne(t *testing.T) {
	for name, w := range map[string]waterquality.Weights{
		"cpcb":     waterquality.CPCBWeights,
		"extended": waterquality.ExtendedWeights,
	} {
		sum := 0.0
		for _, x := range w {
			sum += x.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9, name)
	}
	assert.Equal(t, waterquality.ExtendedWeights, waterquality.WeightsFor("extended"))
	assert.Equal(t, waterquality.CPCBWeights, waterquality.WeightsFor("unknown"))
}

func TestEngine_TemperatureCompensation(t *testing.T) {
	v := values(map[waterquality.Parameter]float64{
		waterquality.DissolvedOxygen: 6.5,
		waterquality.Temperature:     25,
	})

	plain := waterquality.Engine{}.Compute(v)
	compensated := waterquality.Engine{TemperatureCompensation: true}.Compute(v)

	// 6.5 mg/L is 100% of the constant but only ~79% of saturation at 25 °C.
	assert.InDelta(t, 100.0, plain.WQI, 0.01)
	assert.Less(t, compensated.WQI, plain.WQI)
	assert.InDelta(t, 8.18, waterquality.DOSaturation(25), 0.01)
}

func TestSubIndexFunctions(t *testing.T) {
	assert.InDelta(t, 91.83, waterquality.PHSubIndex(7.0), 0.01)
	assert.Equal(t, 0.0, waterquality.PHSubIndex(1.5))
	assert.Equal(t, 0.0, waterquality.PHSubIndex(12.5))
	assert.InDelta(t, 16.1+7.35*2, waterquality.PHSubIndex(2), 1e-9)

	assert.InDelta(t, 0.18, waterquality.DOSubIndex(0), 1e-9)
	assert.Equal(t, 100.0, waterquality.DOSubIndex(100))
	assert.InDelta(t, 76.54, waterquality.DOSubIndex(140), 0.01)
	assert.Equal(t, 50.0, waterquality.DOSubIndex(200))

	assert.Equal(t, 97.0, waterquality.FecalColiformSubIndex(0))
	assert.InDelta(t, 97.2, waterquality.FecalColiformSubIndex(1), 1e-9)
	assert.InDelta(t, 11.33, waterquality.FecalColiformSubIndex(1e4), 0.01)
	assert.Equal(t, 2.0, waterquality.FecalColiformSubIndex(1e6))

	assert.InDelta(t, 96.67, waterquality.BODSubIndex(0), 1e-9)
	assert.InDelta(t, 26.67, waterquality.BODSubIndex(10), 0.01)
	assert.Equal(t, 2.0, waterquality.BODSubIndex(45))

	assert.Equal(t, 100.0, waterquality.FluorideSubIndex(0.6))
	assert.Equal(t, 100.0, waterquality.FluorideSubIndex(1.5))
	assert.Equal(t, 70.0, waterquality.FluorideSubIndex(1.8))
	assert.Equal(t, 40.0, waterquality.FluorideSubIndex(2.5))
}

func TestEngine_BandedSubIndices(t *testing.T) {
	e := waterquality.Engine{Weights: waterquality.ExtendedWeights}
	tests := []struct {
		param waterquality.Parameter
		value float64
		want  float64
	}{
		{waterquality.Turbidity, 5, 100},
		{waterquality.Turbidity, 10, 80},
		{waterquality.Turbidity, 10.1, 50},
		{waterquality.TDS, 500, 100},
		{waterquality.TDS, 1000, 75},
		{waterquality.TDS, 1200, 50},
		{waterquality.Nitrates, 10, 100},
		{waterquality.Nitrates, 45, 70},
		{waterquality.Nitrates, 46, 40},
		{waterquality.TotalColiform, 50, 100},
		{waterquality.TotalColiform, 500, 70},
		{waterquality.TotalColiform, 501, 40},
		{waterquality.Iron, 0.3, 100},
		{waterquality.Iron, 1.0, 75},
		{waterquality.Iron, 1.2, 50},
	}
	for _, tt := range tests {
		v := values(map[waterquality.Parameter]float64{tt.param: tt.value})
		got, ok := e.SubIndex(tt.param, v)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "%s=%v", tt.param, tt.value)
	}

	_, ok := e.SubIndex(waterquality.Arsenic, values(map[waterquality.Parameter]float64{waterquality.Arsenic: 0.1}))
	assert.False(t, ok)
}

func TestClassificationBoundaries(t *testing.T) {
	categories := []struct {
		wqi  float64
		want waterquality.Category
	}{
		{63, waterquality.CategoryGoodToExcellent},
		{62.99, waterquality.CategoryMediumToGood},
		{50, waterquality.CategoryMediumToGood},
		{49.99, waterquality.CategoryBad},
		{38, waterquality.CategoryBad},
		{37.99, waterquality.CategoryBadToVeryBad},
	}
	for _, tt := range categories {
		assert.Equal(t, tt.want, waterquality.CategoryFor(tt.wqi), "wqi %v", tt.wqi)
	}

	classes := []struct {
		wqi  float64
		want waterquality.WaterClass
	}{
		{100, waterquality.ClassA},
		{90, waterquality.ClassA},
		{89.99, waterquality.ClassB},
		{75, waterquality.ClassB},
		{74.99, waterquality.ClassC},
		{60, waterquality.ClassC},
		{45, waterquality.ClassD},
		{30, waterquality.ClassE},
		{29.99, waterquality.ClassUnfit},
		{0, waterquality.ClassUnfit},
	}
	for _, tt := range classes {
		assert.Equal(t, tt.want, waterquality.WaterClassFor(tt.wqi), "wqi %v", tt.wqi)
	}

	statuses := []struct {
		wqi  float64
		want waterquality.Status
	}{
		{80, waterquality.StatusExcellent},
		{79.99, waterquality.StatusGood},
		{65, waterquality.StatusGood},
		{50, waterquality.StatusModerate},
		{35, waterquality.StatusPoor},
		{34.99, waterquality.StatusVeryPoor},
	}
	for _, tt := range statuses {
		assert.Equal(t, tt.want, waterquality.StatusFor(tt.wqi), "wqi %v", tt.wqi)
	}
}

func TestParseClassification(t *testing.T) {
	for in, want := range map[string]waterquality.WaterClass{
		"A":                 waterquality.ClassA,
		"class c":           waterquality.ClassC,
		"unfit":             waterquality.ClassUnfit,
		"Unfit for any use": waterquality.ClassUnfit,
		"Class D - Wildlife & Fisheries": waterquality.ClassD,
	} {
		got, err := waterquality.ParseWaterClass(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := waterquality.ParseWaterClass("F")
	assert.ErrorIs(t, err, waterquality.ErrUnknownClass)

	s, err := waterquality.ParseStatus("very_poor")
	assert.NoError(t, err)
	assert.Equal(t, waterquality.StatusVeryPoor, s)
	_, err = waterquality.ParseStatus("awful")
	assert.ErrorIs(t, err, waterquality.ErrUnknownClass)

	assert.Equal(t, "B", waterquality.ClassB.Code())
}
