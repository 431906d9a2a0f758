// Package feature converts raw event attributes and user state into
// independent [0,1] match scores, one per attribute dimension.
//
// Every "preference unset" case degrades to a neutral 0.5 rather than an
// error or a biased extreme; this lets the fuzzy engine treat missing
// preferences as genuinely neutral evidence.
package feature

import (
	"math"
	"sort"
	"time"

	"github.com/okian/festa/internal/domain/model"
)

// Default interest blend weights: similarity, stated category weight,
// history boost.
const (
	defaultSimilarityWeight = 0.6
	defaultCategoryWeight   = 0.3
	defaultHistoryWeight    = 0.1

	neutralScore  = 0.5
	popularityMax = 100.0
)

// Scorer computes per-attribute match scores for candidate events against
// one user's profile and stated preferences. It holds no per-event state;
// methods are safe for concurrent use as long as the preferences are not
// mutated concurrently.
type Scorer struct {
	profile *model.Profile
	prefs   model.Preferences

	// Optional text-similarity capability.
	vectorize model.Vectorizer

	similarityWeight float64
	categoryWeight   float64
	historyWeight    float64
}

// New creates a Scorer with configuration options.
func New(profile *model.Profile, prefs model.Preferences, opts ...Option) *Scorer {
	s := &Scorer{
		profile:          profile,
		prefs:            prefs,
		similarityWeight: defaultSimilarityWeight,
		categoryWeight:   defaultCategoryWeight,
		historyWeight:    defaultHistoryWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize rescales value into [0,1] given min and max bounds, clamped.
// Returns 0.5 when min == max: a degenerate range carries no information,
// and 0.5 keeps it neutral instead of picking an arbitrary endpoint.
func Normalize(value, minVal, maxVal float64) float64 {
	if maxVal == minVal {
		return neutralScore
	}
	return clamp01((value - minVal) / (maxVal - minVal))
}

// ScoreInterest blends three signals: similarity of (price, distance,
// popularity) to the user's historical mean, the stated category weight,
// and a history boost from how often the category was attended.
func (s *Scorer) ScoreInterest(e model.Event) float64 {
	u := s.profile.MeanVector()
	v := e.Vector()

	var dist, maxDist float64
	for i := range u {
		d := u[i] - v[i]
		dist += d * d
		ceil := math.Max(u[i], v[i])
		if ceil == 0 {
			ceil = 1 // zero ceiling would make the bound degenerate
		}
		maxDist += ceil * ceil
	}
	similarity := 1 - Normalize(math.Sqrt(dist), 0, math.Sqrt(maxDist))

	catWeight := s.prefs.CategoryInterest(e.Category)

	var historyBoost float64
	if counts := s.profile.CategoryCounts(); len(counts) > 0 {
		maxCount := 0
		for _, c := range counts {
			if c > maxCount {
				maxCount = c
			}
		}
		historyBoost = Normalize(float64(counts[e.Category]), 0, float64(maxCount))
	}

	return clamp01(s.similarityWeight*similarity + s.categoryWeight*catWeight + s.historyWeight*historyBoost)
}

// ScoreDistance maps distance linearly: 1 at the doorstep, 0 at the stated
// maximum and beyond. 0.5 when no maximum is set.
func (s *Scorer) ScoreDistance(e model.Event) float64 {
	if s.prefs.MaxDistance <= 0 {
		return neutralScore
	}
	return clamp01(1 - e.Distance/s.prefs.MaxDistance)
}

// ScoreTime is the overlap ratio between the event window and the union of
// preferred windows: overlap seconds / event duration seconds. 0.5 with no
// preferred windows; 0 for non-positive event duration.
func (s *Scorer) ScoreTime(e model.Event) float64 {
	if len(s.prefs.PreferredTimes) == 0 {
		return neutralScore
	}
	duration := e.End().Sub(e.Start).Seconds()
	if duration <= 0 {
		return 0
	}

	windows := mergeWindows(s.prefs.PreferredTimes)
	var overlap float64
	for _, w := range windows {
		latestStart := maxTime(e.Start, w.start)
		earliestEnd := minTime(e.End(), w.end)
		if earliestEnd.After(latestStart) {
			overlap += earliestEnd.Sub(latestStart).Seconds()
		}
	}
	return clamp01(overlap / duration)
}

// ScoreLength compares the event's duration to the mean duration of past
// attended events. 0.5 with no history.
func (s *Scorer) ScoreLength(e model.Event) float64 {
	if s.profile.Len() == 0 {
		return neutralScore
	}
	mean := s.profile.MeanDuration()
	diff := math.Abs(e.Duration - mean)
	return 1 - Normalize(diff, 0, math.Max(e.Duration, mean))
}

// ScoreBudget scores price against the applicable budget: free events score
// 1, an unset budget scores 0 for any priced event, and within budget
// cheaper is better, reaching 0 at full budget use and staying 0 from
// 2x budget onward.
func (s *Scorer) ScoreBudget(e model.Event) float64 {
	if e.Price <= 0 {
		return 1
	}
	budget := s.prefs.BudgetFor(e.Category)
	if budget <= 0 {
		return 0
	}
	if e.Price <= budget {
		return clamp01(1 - e.Price/budget)
	}
	overRatio := (e.Price - budget) / budget
	return clamp01(1 - overRatio)
}

// ScoreDescription is the cosine similarity between the event description's
// vector and the user's text profile. 0.5 when the capability or profile is
// absent, or when either vector has zero magnitude.
func (s *Scorer) ScoreDescription(e model.Event) float64 {
	profile := s.profile.TextProfile()
	if s.vectorize == nil || profile == nil {
		return neutralScore
	}
	vec := s.vectorize(e.Description)
	if len(vec) != len(profile) {
		panic("feature: vectorizer dimension mismatch with text profile")
	}
	var dot, normA, normB float64
	for i := range vec {
		dot += vec[i] * profile[i]
		normA += vec[i] * vec[i]
		normB += profile[i] * profile[i]
	}
	if normA == 0 || normB == 0 {
		return neutralScore
	}
	return clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// Compute is the sole aggregation point consumed by the fuzzy engine.
// Popularity is clamped to 0-100 and rescaled into [0,1]; every other key
// delegates to its scorer.
func (s *Scorer) Compute(e model.Event) Features {
	f := Features{
		Price:      s.ScoreBudget(e),
		Distance:   s.ScoreDistance(e),
		Popularity: math.Min(math.Max(e.Popularity, 0), popularityMax) / popularityMax,
		Interest:   s.ScoreInterest(e),
		StartHour:  s.ScoreTime(e),
		Length:     s.ScoreLength(e),
	}
	if s.vectorize != nil && s.profile.TextProfile() != nil {
		f.Description = s.ScoreDescription(e)
		f.HasDescription = true
	}
	return f
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// window is a closed-open absolute time interval.
type window struct {
	start, end time.Time
}

// mergeWindows sorts preferred windows and merges overlapping ones so the
// overlap sum is computed against their union, not their multiset.
func mergeWindows(prefs []model.TimeWindow) []window {
	ws := make([]window, 0, len(prefs))
	for _, p := range prefs {
		if !p.End().After(p.Start) {
			continue
		}
		ws = append(ws, window{start: p.Start, end: p.End()})
	}
	sort.Slice(ws, func(i, j int) bool { return ws[i].start.Before(ws[j].start) })

	merged := ws[:0]
	for _, w := range ws {
		if n := len(merged); n > 0 && !w.start.After(merged[n-1].end) {
			if w.end.After(merged[n-1].end) {
				merged[n-1].end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
