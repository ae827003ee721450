package waterquality

import "math"

// Values is a fixed-size set of parameter values. It is a plain value type,
// so copies never share state.
type Values struct {
	v   [numParameters]float64
	set uint32
}

// Get returns the value of p and whether it is present.
func (v Values) Get(p Parameter) (float64, bool) {
	if !p.Valid() || v.set&(1<<uint(p)) == 0 {
		return 0, false
	}
	return v.v[p], true
}

// Has reports whether p is present.
func (v Values) Has(p Parameter) bool {
	_, ok := v.Get(p)
	return ok
}

// Set stores a value for p.
func (v *Values) Set(p Parameter, x float64) {
	if !p.Valid() {
		return
	}
	v.v[p] = x
	v.set |= 1 << uint(p)
}

// Delete removes p.
func (v *Values) Delete(p Parameter) {
	if !p.Valid() {
		return
	}
	v.v[p] = 0
	v.set &^= 1 << uint(p)
}

// Len returns the number of present parameters.
func (v Values) Len() int {
	n := 0
	for s := v.set; s != 0; s &= s - 1 {
		n++
	}
	return n
}

// Each calls fn for every present parameter in canonical order.
func (v Values) Each(fn func(p Parameter, x float64)) {
	for p := Parameter(0); p < numParameters; p++ {
		if x, ok := v.Get(p); ok {
			fn(p, x)
		}
	}
}

// Map returns the present values keyed by parameter JSON key.
func (v Values) Map() map[string]float64 {
	out := make(map[string]float64, v.Len())
	v.Each(func(p Parameter, x float64) {
		out[p.String()] = x
	})
	return out
}

// ValuesFromMap builds Values from JSON keys. Unknown keys are returned
// separately so callers can report them.
func ValuesFromMap(m map[string]float64) (Values, []string) {
	var out Values
	var unknown []string
	for k, x := range m {
		p, err := ParseParameter(k)
		if err != nil {
			unknown = append(unknown, k)
			continue
		}
		out.Set(p, x)
	}
	return out, unknown
}

// Clamp limits x to the plausible range of p.
func Clamp(p Parameter, x float64) float64 {
	lo, hi := p.Range()
	return math.Min(math.Max(x, lo), hi)
}

// Round rounds x to the precision of p.
func Round(p Parameter, x float64) float64 {
	return roundTo(x, p.Precision())
}

func roundTo(x float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(x*scale) / scale
}
