package vectorizer_test

import (
	"testing"

	vectorizer "github.com/okian/festa/internal/adapters/vectorizer"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTFIDF(t *testing.T) {
	Convey("Given a vectorizer built from a small corpus", t, func() {
		v := vectorizer.NewTFIDF(
			"live jazz music downtown",
			"street food market downtown",
			"outdoor rock music festival",
		)

		Convey("Then the vocabulary is frozen and fixed-width", func() {
			So(v.Dimensions(), ShouldEqual, 10)
			So(v.Vector("live jazz"), ShouldHaveLength, 10)
			So(v.Vector("anything else entirely"), ShouldHaveLength, 10)
		})

		Convey("When embedding a known document", func() {
			vec := v.Vector("live jazz music downtown")

			Convey("Then at least one component is non-zero", func() {
				var sum float64
				for _, x := range vec {
					So(x, ShouldBeGreaterThanOrEqualTo, 0)
					sum += x
				}
				So(sum, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When embedding text with no known terms", func() {
			vec := v.Vector("quantum flux capacitor")

			Convey("Then the vector is all zeros", func() {
				for _, x := range vec {
					So(x, ShouldEqual, 0)
				}
			})
		})

		Convey("When embedding the same text twice", func() {
			first := v.Vector("jazz downtown")
			second := v.Vector("jazz downtown")

			Convey("Then results are identical and independently owned", func() {
				So(second, ShouldResemble, first)
				first[0] = 99
				So(v.Vector("jazz downtown"), ShouldNotResemble, first)
			})
		})

		Convey("When tokenizing mixed punctuation and case", func() {
			a := v.Vector("JAZZ, music!")
			b := v.Vector("jazz music")

			Convey("Then normalization makes them equal", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("Then rarer terms weigh more than common ones", func() {
			// "downtown" appears in two documents, "jazz" in one.
			jazz := v.Vector("jazz")
			downtown := v.Vector("downtown")
			So(maxComponent(jazz), ShouldBeGreaterThan, maxComponent(downtown))
		})
	})

	Convey("Given an empty corpus", t, func() {
		v := vectorizer.NewTFIDF()

		Convey("Then every vector is empty", func() {
			So(v.Dimensions(), ShouldEqual, 0)
			So(v.Vector("anything"), ShouldBeEmpty)
		})
	})
}

func maxComponent(vec []float64) float64 {
	out := 0.0
	for _, x := range vec {
		if x > out {
			out = x
		}
	}
	return out
}
