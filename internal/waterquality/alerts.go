package waterquality

import (
	"fmt"
	"strconv"
)

// Severity grades an alert.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a single threshold violation.
type Alert struct {
	Parameter Parameter `json:"parameter"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}

// limit is one side of a safe range. critical is the bound beyond which the
// violation escalates; zero means never.
type limit struct {
	value    float64
	critical float64
}

type alertRule struct {
	parameter Parameter
	min, max  *limit

	// criticalByDefault escalates every violation.
	criticalByDefault bool
}

// Safe ranges are inclusive at both edges.
var alertRules = []alertRule{
	{parameter: PH, min: &limit{6.5, 5.5}, max: &limit{8.5, 9.5}},
	{parameter: Turbidity, max: &limit{value: 10}},
	{parameter: TDS, max: &limit{value: 500}},
	{parameter: DissolvedOxygen, min: &limit{4.0, 2.0}},
	{parameter: BOD, max: &limit{value: 6.0}},
	{parameter: COD, max: &limit{value: 30}},
	{parameter: Nitrates, max: &limit{value: 45}},
	{parameter: Fluoride, min: &limit{value: 0.6}, max: &limit{value: 1.5}},
	{parameter: Iron, max: &limit{value: 1.0}},
	{parameter: Arsenic, max: &limit{value: 0.01}, criticalByDefault: true},
	{parameter: Lead, max: &limit{value: 0.01}, criticalByDefault: true},
	{parameter: Chromium, max: &limit{value: 0.05}},
	{parameter: Cadmium, max: &limit{value: 0.003}, criticalByDefault: true},
	{parameter: Mercury, max: &limit{value: 0.001}, criticalByDefault: true},
	{parameter: TotalColiform, max: &limit{value: 500}},
	{parameter: FecalColiform, max: &limit{100, 2500}},
}

var rulesByParameter = func() [numParameters]*alertRule {
	var out [numParameters]*alertRule
	for i := range alertRules {
		out[alertRules[i].parameter] = &alertRules[i]
	}
	return out
}()

// EvaluateAlerts returns the threshold violations in values, in canonical
// parameter order with at most one alert per parameter. An empty result means
// no violations.
func EvaluateAlerts(values Values) []Alert {
	var alerts []Alert
	values.Each(func(p Parameter, x float64) {
		rule := rulesByParameter[p]
		if rule == nil {
			return
		}
		if a, ok := rule.check(x); ok {
			alerts = append(alerts, a)
		}
	})
	return alerts
}

func (r *alertRule) check(x float64) (Alert, bool) {
	switch {
	case r.min != nil && x < r.min.value:
		critical := r.criticalByDefault || (r.min.critical != 0 && x < r.min.critical)
		return r.alert(x, r.min.value, critical, "Low", "min"), true
	case r.max != nil && x > r.max.value:
		critical := r.criticalByDefault || (r.max.critical != 0 && x > r.max.critical)
		return r.alert(x, r.max.value, critical, "High", "max"), true
	}
	return Alert{}, false
}

func (r *alertRule) alert(x, threshold float64, critical bool, direction, bound string) Alert {
	p := r.parameter
	severity := SeverityWarning
	prefix := ""
	if critical {
		severity = SeverityCritical
		prefix = "CRITICAL: "
	}

	unit := ""
	if p.Unit() != "" {
		unit = " " + p.Unit()
	}
	value := strconv.FormatFloat(x, 'f', -1, 64)
	lim := strconv.FormatFloat(threshold, 'f', -1, 64)

	msg := fmt.Sprintf("%s%s %s: %s%s (%s: %s)", prefix, direction, p.Label(), value, unit, bound, lim)
	if p == PH {
		msg = fmt.Sprintf("%spH out of range: %s (safe: 6.5-8.5)", prefix, value)
	}

	return Alert{
		Parameter: p,
		Value:     x,
		Threshold: threshold,
		Severity:  severity,
		Message:   msg,
	}
}
