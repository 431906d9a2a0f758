package model

import (
	"sync"
)

// Vectorizer converts free text into a fixed-dimension vector.
// It is an optional capability; a nil Vectorizer disables the text profile.
type Vectorizer func(text string) []float64

// Profile holds the user's attended-event history and the aggregate
// statistics derived from it. Aggregates are recomputed on every append so
// they are never stale relative to the event collection.
//
// The attended history is also the source of the per-category counts used
// for the interest history boost; there is deliberately no second attended
// list anywhere else.
type Profile struct {
	mu sync.RWMutex

	events    []Event
	vectorize Vectorizer

	meanPrice      float64
	meanDistance   float64
	meanPopularity float64
	meanDuration   float64
	textProfile    []float64
}

// NewProfile builds a profile from past attended events. The vectorizer may
// be nil, in which case no text profile is maintained.
func NewProfile(vectorize Vectorizer, events ...Event) *Profile {
	p := &Profile{vectorize: vectorize}
	p.events = append(p.events, events...)
	p.recompute()
	return p
}

// Append records a newly attended event and refreshes all aggregates.
func (p *Profile) Append(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	p.recompute()
}

// recompute refreshes the mean statistics and the text profile.
// Must be called with p.mu held for writing (or before publication).
func (p *Profile) recompute() {
	n := len(p.events)
	if n == 0 {
		p.meanPrice, p.meanDistance, p.meanPopularity, p.meanDuration = 0, 0, 0, 0
		p.textProfile = nil
		return
	}

	var price, distance, popularity, duration float64
	for _, e := range p.events {
		price += e.Price
		distance += e.Distance
		popularity += e.Popularity
		duration += e.Duration
	}
	p.meanPrice = price / float64(n)
	p.meanDistance = distance / float64(n)
	p.meanPopularity = popularity / float64(n)
	p.meanDuration = duration / float64(n)

	p.textProfile = nil
	if p.vectorize == nil {
		return
	}
	var sum []float64
	var counted int
	for _, e := range p.events {
		vec := p.vectorize(e.Description)
		if len(vec) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(vec))
		}
		if len(vec) != len(sum) {
			// Vectorizer contract is fixed-dimension output; ignore strays.
			continue
		}
		for i, v := range vec {
			sum[i] += v
		}
		counted++
	}
	if counted == 0 {
		return
	}
	for i := range sum {
		sum[i] /= float64(counted)
	}
	p.textProfile = sum
}

// Len returns the number of attended events.
func (p *Profile) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.events)
}

// MeanVector returns the historical mean (price, distance, popularity).
func (p *Profile) MeanVector() [3]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return [3]float64{p.meanPrice, p.meanDistance, p.meanPopularity}
}

// MeanDuration returns the mean duration in hours of attended events,
// or 0 when the history is empty.
func (p *Profile) MeanDuration() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meanDuration
}

// CategoryCounts returns how many attended events fall in each category.
func (p *Profile) CategoryCounts() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	counts := make(map[string]int, len(p.events))
	for _, e := range p.events {
		counts[e.Category]++
	}
	return counts
}

// TextProfile returns a copy of the mean description vector, or nil when
// no vectorizer is attached or the history is empty.
func (p *Profile) TextProfile() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.textProfile == nil {
		return nil
	}
	out := make([]float64, len(p.textProfile))
	copy(out, p.textProfile)
	return out
}
