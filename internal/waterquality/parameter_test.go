package waterquality_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasentinel/aquasentinel/internal/waterquality"
)

func TestParameters_CanonicalOrder(t *testing.T) {
	params := waterquality.Parameters()
	require.Len(t, params, 30)

	assert.Equal(t, waterquality.PH, params[0])
	assert.Equal(t, waterquality.Color, params[29])

	seen := make(map[string]bool)
	for _, p := range params {
		assert.False(t, seen[p.String()], "duplicate key %s", p)
		seen[p.String()] = true

		lo, hi := p.Range()
		assert.Less(t, lo, hi, p.String())
	}
}

func TestParseParameter(t *testing.T) {
	p, err := waterquality.ParseParameter("dissolvedOxygen")
	require.NoError(t, err)
	assert.Equal(t, waterquality.DissolvedOxygen, p)

	p, err = waterquality.ParseParameter("FECALCOLIFORM")
	require.NoError(t, err)
	assert.Equal(t, waterquality.FecalColiform, p)

	_, err = waterquality.ParseParameter("radon")
	assert.ErrorIs(t, err, waterquality.ErrUnknownParameter)
}

func TestParameter_TextRoundTrip(t *testing.T) {
	var got struct {
		P waterquality.Parameter `json:"p"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"p":"nitrates"}`), &got))
	assert.Equal(t, waterquality.Nitrates, got.P)

	b, err := json.Marshal(map[string]waterquality.Parameter{"p": waterquality.Arsenic})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":"arsenic"}`, string(b))
}

func TestValues(t *testing.T) {
	var v waterquality.Values
	assert.Equal(t, 0, v.Len())

	v.Set(waterquality.Turbidity, 12)
	v.Set(waterquality.PH, 7.1)
	assert.Equal(t, 2, v.Len())

	x, ok := v.Get(waterquality.PH)
	assert.True(t, ok)
	assert.InDelta(t, 7.1, x, 1e-9)

	var order []waterquality.Parameter
	v.Each(func(p waterquality.Parameter, _ float64) { order = append(order, p) })
	assert.Equal(t, []waterquality.Parameter{waterquality.PH, waterquality.Turbidity}, order)

	copied := v
	copied.Delete(waterquality.PH)
	assert.True(t, v.Has(waterquality.PH), "copies must not share state")
	assert.False(t, copied.Has(waterquality.PH))

	assert.Equal(t, map[string]float64{"ph": 7.1, "turbidity": 12}, v.Map())
}

func TestValuesFromMap(t *testing.T) {
	v, unknown := waterquality.ValuesFromMap(map[string]float64{"ph": 7.2, "radon": 3})
	assert.Equal(t, []string{"radon"}, unknown)
	assert.True(t, v.Has(waterquality.PH))
	assert.Equal(t, 1, v.Len())
}

func TestClampAndRound(t *testing.T) {
	assert.Equal(t, 14.0, waterquality.Clamp(waterquality.PH, 15))
	assert.Equal(t, 0.0, waterquality.Clamp(waterquality.Turbidity, -3))
	assert.Equal(t, 7.3, waterquality.Round(waterquality.PH, 7.26))
	assert.Equal(t, 12.35, waterquality.Round(waterquality.Chlorides, 12.349))
	assert.Equal(t, 0.0123, waterquality.Round(waterquality.Arsenic, 0.01234))
	assert.Equal(t, 57.0, waterquality.Round(waterquality.FecalColiform, 56.6))
}
