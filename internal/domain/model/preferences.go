package model

import (
	"time"
)

// GlobalBudgetKey is the fallback key in the budget map applying to any
// category without a specific budget.
const GlobalBudgetKey = "global"

// TimeWindow is one preferred attendance window.
type TimeWindow struct {
	Start    time.Time
	Duration float64 // hours
}

// End returns the window's end time.
func (w TimeWindow) End() time.Time {
	return w.Start.Add(time.Duration(w.Duration * float64(time.Hour)))
}

// Preferences captures the user's stated (as opposed to learned) taste.
// The zero value means "nothing stated": every scorer degrades to its
// documented neutral value.
type Preferences struct {
	// MaxDistance is the furthest acceptable distance; <= 0 means unset.
	MaxDistance float64

	// Categories maps category labels to interest weights in [0,1].
	// An absent category means weight 0.
	Categories map[string]float64

	// PreferredTimes lists preferred attendance windows. Empty means no
	// time preference.
	PreferredTimes []TimeWindow

	// Budgets maps category labels to budgets, with GlobalBudgetKey as the
	// fallback. A missing or non-positive budget means unset.
	Budgets map[string]float64
}

// CategoryInterest returns the stated weight for a category, 0 if unseen.
func (p Preferences) CategoryInterest(category string) float64 {
	w := p.Categories[category]
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// BudgetFor resolves the applicable budget for a category: the category's
// own entry if present, otherwise the global fallback, otherwise 0 (unset).
func (p Preferences) BudgetFor(category string) float64 {
	if b, ok := p.Budgets[category]; ok {
		return b
	}
	return p.Budgets[GlobalBudgetKey]
}

// InPreferredTime reports whether the given event window overlaps any
// preferred window at all. With no preferred windows it returns false;
// callers wanting neutral semantics should use the overlap-ratio scorer.
func (p Preferences) InPreferredTime(start time.Time, duration float64) bool {
	end := start.Add(time.Duration(duration * float64(time.Hour)))
	for _, w := range p.PreferredTimes {
		if w.Start.Before(end) && start.Before(w.End()) {
			return true
		}
	}
	return false
}
