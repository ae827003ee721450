package waterquality

// DefaultEventProbability is the chance that an eligible parameter is hit by a
// pollution event on a single synthesis.
const DefaultEventProbability = 0.05

// EventInjector perturbs values to model discharge and overflow events.
type EventInjector struct {
	Enabled     bool
	Probability float64
}

// DefaultEventInjector returns an enabled injector with the default probability.
func DefaultEventInjector() EventInjector {
	return EventInjector{Enabled: true, Probability: DefaultEventProbability}
}

// eventMultiplier returns the multiplier range for parameters affected by events.
func eventMultiplier(p Parameter) (lo, hi float64, ok bool) {
	switch p {
	case BOD, COD, Ammonia, Phosphates:
		return 1.5, 2.5, true
	case TotalColiform, FecalColiform:
		return 2.0, 4.0, true
	case Turbidity:
		return 1.5, 2.0, true
	}
	return 0, 0, false
}

// Eligible reports whether p can be affected by a pollution event.
func (e EventInjector) Eligible(p Parameter) bool {
	_, _, ok := eventMultiplier(p)
	return ok
}

// Apply returns value, multiplied when an event fires, and whether it fired.
// Ineligible parameters and a disabled injector draw nothing from rng.
func (e EventInjector) Apply(rng RandomSource, p Parameter, value float64) (float64, bool) {
	if !e.Enabled {
		return value, false
	}
	lo, hi, ok := eventMultiplier(p)
	if !ok {
		return value, false
	}
	if rng.Float64() >= e.Probability {
		return value, false
	}
	return value * uniform(rng, lo, hi), true
}
