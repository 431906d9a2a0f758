// Package fuzzy combines independent match scores into one recommendation
// verdict using overlapping linguistic categories instead of hard
// thresholds.
package fuzzy

// Label names a linguistic term.
type Label string

// Linguistic terms shared by every variable and the output.
const (
	LabelLow    Label = "low"
	LabelMedium Label = "medium"
	LabelHigh   Label = "high"
)

// labelOrder fixes the deterministic tie-break order for label selection:
// low first, then medium, then high; first seen wins.
var labelOrder = [...]Label{LabelLow, LabelMedium, LabelHigh} //nolint:gochecknoglobals // immutable ordering table

// Triangle is a triangular membership function with feet a and c and
// peak b. Degenerate shoulders (a == b or b == c) form half-triangles at
// the universe edges.
type Triangle struct {
	a, b, c float64
}

// NewTriangle builds a triangular membership function.
func NewTriangle(a, b, c float64) Triangle {
	return Triangle{a: a, b: b, c: c}
}

// Membership returns the degree of x in the set, in [0,1].
func (t Triangle) Membership(x float64) float64 {
	switch {
	case x < t.a || x > t.c:
		return 0
	case x == t.b:
		return 1
	case x < t.b:
		return (x - t.a) / (t.b - t.a)
	default:
		return (t.c - x) / (t.c - t.b)
	}
}

// Variable holds the three overlapping terms of one dimension over the
// shared [0,1] universe.
type Variable struct {
	low, medium, high Triangle
}

// newUnitVariable builds the canonical low/medium/high partition over
// [0,1]: low peaks at 0, medium at the midpoint, high at 1.
func newUnitVariable() Variable {
	return Variable{
		low:    NewTriangle(0, 0, 0.5),
		medium: NewTriangle(0, 0.5, 1),
		high:   NewTriangle(0.5, 1, 1),
	}
}

// grades carries one variable's membership in each term.
type grades struct {
	low, medium, high float64
}

// Fuzzify computes x's membership in every term. x must already be
// clamped into the universe.
func (v Variable) Fuzzify(x float64) grades {
	return grades{
		low:    v.low.Membership(x),
		medium: v.medium.Membership(x),
		high:   v.high.Membership(x),
	}
}

// term returns the membership function for a label.
func (v Variable) term(l Label) Triangle {
	switch l {
	case LabelLow:
		return v.low
	case LabelMedium:
		return v.medium
	default:
		return v.high
	}
}

// by returns the grade for a label.
func (g grades) by(l Label) float64 {
	switch l {
	case LabelLow:
		return g.low
	case LabelMedium:
		return g.medium
	default:
		return g.high
	}
}

// Fuzzy AND is min, fuzzy OR is max.

func and(vals ...float64) float64 {
	out := 1.0
	for _, v := range vals {
		if v < out {
			out = v
		}
	}
	return out
}

func or(vals ...float64) float64 {
	out := 0.0
	for _, v := range vals {
		if v > out {
			out = v
		}
	}
	return out
}
