package fuzzy

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/festa/internal/domain/feature"
)

func uniform(v float64) feature.Features {
	return feature.Features{
		Price:      v,
		Distance:   v,
		Popularity: v,
		Interest:   v,
		StartHour:  v,
		Length:     v,
	}
}

func TestTriangleMembership(t *testing.T) {
	Convey("Given a triangular membership function", t, func() {
		tri := NewTriangle(0, 0.5, 1)

		Convey("It is zero outside its support", func() {
			So(tri.Membership(-0.1), ShouldEqual, 0)
			So(tri.Membership(1.1), ShouldEqual, 0)
		})

		Convey("It is one at the peak", func() {
			So(tri.Membership(0.5), ShouldEqual, 1)
		})

		Convey("It is linear on both slopes", func() {
			So(tri.Membership(0.25), ShouldAlmostEqual, 0.5, 1e-9)
			So(tri.Membership(0.75), ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Degenerate shoulders behave as half-triangles", func() {
			low := NewTriangle(0, 0, 0.5)
			So(low.Membership(0), ShouldEqual, 1)
			So(low.Membership(0.25), ShouldAlmostEqual, 0.5, 1e-9)
			So(low.Membership(0.5), ShouldEqual, 0)

			high := NewTriangle(0.5, 1, 1)
			So(high.Membership(1), ShouldEqual, 1)
			So(high.Membership(0.75), ShouldAlmostEqual, 0.5, 1e-9)
			So(high.Membership(0.5), ShouldEqual, 0)
		})
	})
}

func TestUnitPartition(t *testing.T) {
	Convey("Given the canonical unit partition", t, func() {
		v := newUnitVariable()

		Convey("Adjacent terms overlap and sum to one at the midpoints", func() {
			g := v.Fuzzify(0.25)
			So(g.low+g.medium+g.high, ShouldAlmostEqual, 1, 1e-9)
			g = v.Fuzzify(0.75)
			So(g.low+g.medium+g.high, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("The midpoint belongs fully to the medium term", func() {
			g := v.Fuzzify(0.5)
			So(g.low, ShouldEqual, 0)
			So(g.medium, ShouldEqual, 1)
			So(g.high, ShouldEqual, 0)
		})
	})
}

func TestRecommend(t *testing.T) {
	Convey("Given an engine with the default rule base", t, func() {
		e := New()

		Convey("Uniformly strong scores yield a high verdict", func() {
			v := e.Recommend(uniform(1))
			So(v.Label, ShouldEqual, LabelHigh)
			So(v.Percent, ShouldBeGreaterThanOrEqualTo, 70)
			So(v.RuleGap, ShouldBeFalse)
		})

		Convey("Uniformly weak scores yield a low verdict", func() {
			v := e.Recommend(uniform(0))
			So(v.Label, ShouldEqual, LabelLow)
			So(v.Percent, ShouldBeLessThanOrEqualTo, 40)
			So(v.RuleGap, ShouldBeFalse)
		})

		Convey("Uniformly neutral scores yield exactly the midpoint", func() {
			v := e.Recommend(uniform(0.5))
			So(v.Label, ShouldEqual, LabelMedium)
			So(v.Percent, ShouldAlmostEqual, 50, 1e-9)
			So(v.RuleGap, ShouldBeFalse)
		})

		Convey("The verdict is idempotent for equal inputs", func() {
			f := feature.Features{
				Price: 0.8, Distance: 0.3, Popularity: 0.6,
				Interest: 0.7, StartHour: 0.4, Length: 0.9,
			}
			first := e.Recommend(f)
			for i := 0; i < 5; i++ {
				So(e.Recommend(f), ShouldResemble, first)
			}
		})

		Convey("Percent never decreases as interest rises", func() {
			prev := -1.0
			for i := 0; i <= 20; i++ {
				f := uniform(0.5)
				f.Interest = float64(i) / 20
				v := e.Recommend(f)
				So(v.Percent, ShouldBeGreaterThanOrEqualTo, prev)
				prev = v.Percent
			}
		})

		Convey("Out-of-range inputs are clamped, not rejected", func() {
			f := uniform(0.5)
			f.Price = 1.7
			f.Distance = -0.4
			clamped := uniform(0.5)
			clamped.Price = 1
			clamped.Distance = 0
			So(e.Recommend(f), ShouldResemble, e.Recommend(clamped))
		})

		Convey("Percent always lands inside [0,100]", func() {
			for i := 0; i <= 10; i++ {
				v := e.Recommend(uniform(float64(i) / 10))
				So(v.Percent, ShouldBeGreaterThanOrEqualTo, 0)
				So(v.Percent, ShouldBeLessThanOrEqualTo, 100)
			}
		})
	})
}

func TestRecommendRuleGap(t *testing.T) {
	Convey("Given inputs outside every rule's support", t, func() {
		e := New()
		// Full interest with everything else dead neutral fires no rule:
		// the high rules need a second strong signal, the medium rules need
		// medium interest or a low cost/distance term, and the low rules
		// need low interest.
		f := uniform(0.5)
		f.Interest = 1

		Convey("The engine degrades to the neutral verdict and flags it", func() {
			v := e.Recommend(f)
			So(v.RuleGap, ShouldBeTrue)
			So(v.Label, ShouldEqual, LabelMedium)
			So(v.Percent, ShouldEqual, 50)
		})
	})
}

func TestEngineOptions(t *testing.T) {
	Convey("Given centroid sampling options", t, func() {
		Convey("A custom resolution still lands on the exact midpoint", func() {
			e := New(WithCentroidSamples(1001))
			v := e.Recommend(uniform(0.5))
			So(v.Percent, ShouldAlmostEqual, 50, 1e-9)
		})

		Convey("Resolutions below three are ignored", func() {
			e := New(WithCentroidSamples(1))
			So(e.samples, ShouldEqual, defaultCentroidSamples)
		})
	})

	Convey("Given a replacement rule base", t, func() {
		e := New(WithRules([]Rule{{
			Name:       "always-high",
			Consequent: LabelHigh,
			strength:   func(inputs) float64 { return 1 },
		}}))

		Convey("Only the supplied rules fire", func() {
			v := e.Recommend(uniform(0))
			So(v.Label, ShouldEqual, LabelHigh)
			So(v.Percent, ShouldBeGreaterThanOrEqualTo, 70)
		})
	})
}

func TestLabelTieBreak(t *testing.T) {
	Convey("Given crisp values with ambiguous memberships", t, func() {
		e := New()

		Convey("An exact tie resolves to the earlier label", func() {
			// At 0.25 the low and medium terms both grade 0.5.
			So(e.labelFor(0.25), ShouldEqual, LabelLow)
			// At 0.75 the medium and high terms both grade 0.5.
			So(e.labelFor(0.75), ShouldEqual, LabelMedium)
		})

		Convey("Clear winners are unaffected", func() {
			So(e.labelFor(0.1), ShouldEqual, LabelLow)
			So(e.labelFor(0.5), ShouldEqual, LabelMedium)
			So(e.labelFor(0.9), ShouldEqual, LabelHigh)
		})
	})
}
