// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a candidate event offered for recommendation.
type Event struct {
	Name        string    // unique display name, used as the ranking key
	Category    string    // open category label, e.g. "music", "tech"
	Price       float64   // ticket price, >= 0
	Distance    float64   // distance from the user, same unit as Preferences.MaxDistance
	Popularity  float64   // documented range 0-100, not enforced by the entity
	Description string    // free text used for the description match
	Duration    float64   // length in hours, > 0
	Start       time.Time // start time
}

// NewEvent validates raw attributes and builds an Event.
// Negative numeric fields are rejected here so the downstream scoring
// formulas can assume non-negativity.
func NewEvent(name, category string, price, distance, popularity float64, description string, duration float64, start time.Time) (Event, error) {
	switch {
	case strings.TrimSpace(name) == "":
		return Event{}, fmt.Errorf("%w: missing name", ErrInvalidEvent)
	case strings.TrimSpace(category) == "":
		return Event{}, fmt.Errorf("%w: missing category", ErrInvalidEvent)
	case price < 0:
		return Event{}, fmt.Errorf("%w: negative price %v", ErrInvalidEvent, price)
	case distance < 0:
		return Event{}, fmt.Errorf("%w: negative distance %v", ErrInvalidEvent, distance)
	case popularity < 0:
		return Event{}, fmt.Errorf("%w: negative popularity %v", ErrInvalidEvent, popularity)
	case duration <= 0:
		return Event{}, fmt.Errorf("%w: non-positive duration %v", ErrInvalidEvent, duration)
	}
	return Event{
		Name:        name,
		Category:    category,
		Price:       price,
		Distance:    distance,
		Popularity:  popularity,
		Description: description,
		Duration:    duration,
		Start:       start,
	}, nil
}

// Vector returns the (price, distance, popularity) attribute vector used
// for similarity against the user's historical mean.
func (e Event) Vector() [3]float64 {
	return [3]float64{e.Price, e.Distance, e.Popularity}
}

// End returns the event's end time.
func (e Event) End() time.Time {
	return e.Start.Add(time.Duration(e.Duration * float64(time.Hour)))
}
