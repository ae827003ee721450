// Package waterquality synthesizes water quality readings and scores them.
//
// A reading is produced in four stages: a per-station baseline is derived
// once from the station profile, each tick scales the baseline by seasonal,
// diurnal and noise factors (with occasional pollution events), the result is
// scored with a CPCB-style Water Quality Index, and finally checked against
// safe drinking water limits to produce alerts.
package waterquality

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownParameter is returned when a parameter name is not recognised.
var ErrUnknownParameter = errors.New("unknown parameter")

// Parameter identifies a measured water quality parameter. The declaration
// order is the canonical order used for JSON output and alert evaluation.
type Parameter int

const (
	PH Parameter = iota
	Temperature
	Turbidity
	TDS
	Conductivity
	DissolvedOxygen
	BOD
	COD
	TotalHardness
	TotalAlkalinity
	Calcium
	Magnesium
	Sodium
	Potassium
	Chlorides
	Sulfates
	Bicarbonates
	Nitrates
	Phosphates
	Fluoride
	Iron
	Ammonia
	Arsenic
	Lead
	Chromium
	Cadmium
	Mercury
	TotalColiform
	FecalColiform
	Color

	numParameters
)

// Precision values for rounding. Integer parameters round to whole numbers.
const (
	PrecisionInteger  = 0
	PrecisionPhysical = 1
	PrecisionChemical = 2
	PrecisionTrace    = 4
)

type parameterSpec struct {
	key       string
	label     string
	unit      string
	min, max  float64
	precision int
	diurnal   bool
}

var parameterSpecs = [numParameters]parameterSpec{
	PH:              {key: "ph", label: "pH", unit: "", min: 0, max: 14, precision: PrecisionPhysical},
	Temperature:     {key: "temperature", label: "Temperature", unit: "°C", min: 5, max: 40, precision: PrecisionPhysical},
	Turbidity:       {key: "turbidity", label: "Turbidity", unit: "NTU", min: 0, max: 1000, precision: PrecisionPhysical, diurnal: true},
	TDS:             {key: "tds", label: "TDS", unit: "mg/L", min: 0, max: 5000, precision: PrecisionChemical, diurnal: true},
	Conductivity:    {key: "conductivity", label: "Conductivity", unit: "µS/cm", min: 0, max: 7500, precision: PrecisionChemical, diurnal: true},
	DissolvedOxygen: {key: "dissolvedOxygen", label: "Dissolved Oxygen", unit: "mg/L", min: 0, max: 15, precision: PrecisionPhysical},
	BOD:             {key: "bod", label: "BOD", unit: "mg/L", min: 0, max: 100, precision: PrecisionPhysical, diurnal: true},
	COD:             {key: "cod", label: "COD", unit: "mg/L", min: 0, max: 500, precision: PrecisionPhysical, diurnal: true},
	TotalHardness:   {key: "totalHardness", label: "Total Hardness", unit: "mg/L", min: 0, max: 1500, precision: PrecisionChemical},
	TotalAlkalinity: {key: "totalAlkalinity", label: "Total Alkalinity", unit: "mg/L", min: 0, max: 1000, precision: PrecisionChemical},
	Calcium:         {key: "calcium", label: "Calcium", unit: "mg/L", min: 0, max: 500, precision: PrecisionChemical},
	Magnesium:       {key: "magnesium", label: "Magnesium", unit: "mg/L", min: 0, max: 300, precision: PrecisionChemical},
	Sodium:          {key: "sodium", label: "Sodium", unit: "mg/L", min: 0, max: 1000, precision: PrecisionChemical},
	Potassium:       {key: "potassium", label: "Potassium", unit: "mg/L", min: 0, max: 100, precision: PrecisionChemical},
	Chlorides:       {key: "chlorides", label: "Chlorides", unit: "mg/L", min: 0, max: 2000, precision: PrecisionChemical},
	Sulfates:        {key: "sulfates", label: "Sulfates", unit: "mg/L", min: 0, max: 1000, precision: PrecisionChemical},
	Bicarbonates:    {key: "bicarbonates", label: "Bicarbonates", unit: "mg/L", min: 0, max: 1000, precision: PrecisionChemical},
	Nitrates:        {key: "nitrates", label: "Nitrates", unit: "mg/L", min: 0, max: 200, precision: PrecisionChemical, diurnal: true},
	Phosphates:      {key: "phosphates", label: "Phosphates", unit: "mg/L", min: 0, max: 20, precision: PrecisionChemical, diurnal: true},
	Fluoride:        {key: "fluoride", label: "Fluoride", unit: "mg/L", min: 0, max: 10, precision: PrecisionChemical},
	Iron:            {key: "iron", label: "Iron", unit: "mg/L", min: 0, max: 20, precision: PrecisionChemical},
	Ammonia:         {key: "ammonia", label: "Ammonia", unit: "mg/L", min: 0, max: 50, precision: PrecisionChemical, diurnal: true},
	Arsenic:         {key: "arsenic", label: "Arsenic", unit: "mg/L", min: 0, max: 0.5, precision: PrecisionTrace},
	Lead:            {key: "lead", label: "Lead", unit: "mg/L", min: 0, max: 0.5, precision: PrecisionTrace},
	Chromium:        {key: "chromium", label: "Chromium", unit: "mg/L", min: 0, max: 1, precision: PrecisionTrace},
	Cadmium:         {key: "cadmium", label: "Cadmium", unit: "mg/L", min: 0, max: 0.1, precision: PrecisionTrace},
	Mercury:         {key: "mercury", label: "Mercury", unit: "mg/L", min: 0, max: 0.05, precision: PrecisionTrace},
	TotalColiform:   {key: "totalColiform", label: "Total Coliform", unit: "MPN/100mL", min: 0, max: 1e6, precision: PrecisionInteger, diurnal: true},
	FecalColiform:   {key: "fecalColiform", label: "Fecal Coliform", unit: "MPN/100mL", min: 0, max: 5e5, precision: PrecisionInteger, diurnal: true},
	Color:           {key: "color", label: "Color", unit: "Hazen", min: 0, max: 500, precision: PrecisionInteger},
}

var parameterByKey = func() map[string]Parameter {
	m := make(map[string]Parameter, numParameters)
	for p := Parameter(0); p < numParameters; p++ {
		m[strings.ToLower(parameterSpecs[p].key)] = p
	}
	return m
}()

// Parameters returns every parameter in canonical order.
func Parameters() []Parameter {
	out := make([]Parameter, numParameters)
	for i := range out {
		out[i] = Parameter(i)
	}
	return out
}

// ParseParameter resolves a parameter from its JSON key, case-insensitively.
func ParseParameter(s string) (Parameter, error) {
	p, ok := parameterByKey[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, s)
	}
	return p, nil
}

// Valid reports whether p is a known parameter.
func (p Parameter) Valid() bool {
	return p >= 0 && p < numParameters
}

// String returns the JSON key of the parameter.
func (p Parameter) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Parameter(%d)", int(p))
	}
	return parameterSpecs[p].key
}

// Label returns a human readable name.
func (p Parameter) Label() string { return parameterSpecs[p].label }

// Unit returns the measurement unit, empty for dimensionless parameters.
func (p Parameter) Unit() string { return parameterSpecs[p].unit }

// Range returns the physically plausible range values are clamped to.
func (p Parameter) Range() (lo, hi float64) {
	return parameterSpecs[p].min, parameterSpecs[p].max
}

// Precision returns the number of decimal places values are rounded to.
func (p Parameter) Precision() int { return parameterSpecs[p].precision }

// Diurnal reports whether the parameter follows the time-of-day cycle.
func (p Parameter) Diurnal() bool { return parameterSpecs[p].diurnal }

// MarshalText implements encoding.TextMarshaler.
func (p Parameter) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownParameter, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Parameter) UnmarshalText(text []byte) error {
	parsed, err := ParseParameter(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
