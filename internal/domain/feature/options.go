package feature

import "github.com/okian/festa/internal/domain/model"

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithBlendWeights sets the interest blend weights for similarity, stated
// category weight and history boost. Non-positive sums are ignored.
func WithBlendWeights(similarity, category, history float64) Option {
	return func(s *Scorer) {
		if similarity < 0 || category < 0 || history < 0 {
			return
		}
		if similarity+category+history <= 0 {
			return
		}
		s.similarityWeight = similarity
		s.categoryWeight = category
		s.historyWeight = history
	}
}

// WithVectorizer injects the optional text-similarity capability. The
// vectorizer must match the one the profile's text profile was built with.
func WithVectorizer(v model.Vectorizer) Option {
	return func(s *Scorer) {
		s.vectorize = v
	}
}
