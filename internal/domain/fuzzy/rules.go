package fuzzy

// inputs carries the fuzzified grades of all six dimensions.
type inputs struct {
	price      grades
	distance   grades
	popularity grades
	interest   grades
	startHour  grades
	length     grades
}

// Rule maps an antecedent over the fuzzified inputs to one output term.
// Rules are immutable once constructed; rules sharing a consequent are
// combined by max at evaluation time.
type Rule struct {
	Name       string
	Consequent Label
	strength   func(in inputs) float64
}

// defaultRules is the canonical rule base.
//
// An event is highly recommendable when strong interest coincides with at
// least two other strong signals; moderately recommendable when moderate
// evidence lines up with moderate interest, or strong interest is dragged
// down by price or distance; and not recommendable when interest is absent.
// The last LOW rule covers the interest-is-low region so that low-interest
// inputs always fire something.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:       "high/affordable-nearby-interesting",
			Consequent: LabelHigh,
			strength: func(in inputs) float64 {
				return and(in.price.high, in.distance.high, in.interest.high)
			},
		},
		{
			Name:       "high/affordable-popular-interesting",
			Consequent: LabelHigh,
			strength: func(in inputs) float64 {
				return and(in.price.high, in.popularity.high, in.interest.high)
			},
		},
		{
			Name:       "high/interesting-well-timed-right-length",
			Consequent: LabelHigh,
			strength: func(in inputs) float64 {
				return and(in.interest.high, in.startHour.high, in.length.high)
			},
		},
		{
			Name:       "medium/moderate-cost-or-distance",
			Consequent: LabelMedium,
			strength: func(in inputs) float64 {
				return and(or(in.price.medium, in.distance.medium), in.interest.medium)
			},
		},
		{
			Name:       "medium/interesting-but-costly-or-far",
			Consequent: LabelMedium,
			strength: func(in inputs) float64 {
				return and(in.interest.high, or(in.price.low, in.distance.low))
			},
		},
		{
			Name:       "medium/moderate-popularity-or-length",
			Consequent: LabelMedium,
			strength: func(in inputs) float64 {
				return and(or(in.popularity.medium, in.length.medium), in.interest.medium)
			},
		},
		{
			Name:       "low/uninteresting-and-cheap",
			Consequent: LabelLow,
			strength: func(in inputs) float64 {
				return and(in.interest.low, in.price.low)
			},
		},
		{
			Name:       "low/uninteresting-and-far",
			Consequent: LabelLow,
			strength: func(in inputs) float64 {
				return and(in.interest.low, in.distance.low)
			},
		},
		{
			// Catch-all over the region where interest is neither medium
			// nor high, i.e. its low term.
			Name:       "low/no-interest",
			Consequent: LabelLow,
			strength: func(in inputs) float64 {
				return in.interest.low
			},
		},
	}
}
