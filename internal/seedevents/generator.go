package seedevents

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/festa/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1_000_000
	hoursPerDay        = 24
	startHorizonDays   = 30
)

// categoryProfile drives per-category value ranges so the generated
// corpus looks like a plausible city calendar.
type categoryProfile struct {
	name        string
	priceMin    float64
	priceRange  float64
	maxDuration float64
	words       []string
}

var categoryProfiles = []categoryProfile{
	{"music", 15, 85, 5, []string{"live", "jazz", "rock", "indie", "orchestra", "festival"}},
	{"food", 5, 45, 4, []string{"street", "food", "market", "tasting", "wine", "pop-up"}},
	{"sports", 10, 70, 3, []string{"match", "derby", "marathon", "league", "finals"}},
	{"theatre", 20, 60, 3, []string{"stage", "drama", "comedy", "premiere", "classic"}},
	{"art", 0, 25, 6, []string{"gallery", "exhibition", "modern", "sculpture", "opening"}},
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pick returns a random element of a string slice.
func pick(values []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(values))))
	return values[n.Int64()]
}

// generateEvents creates candidate events with unique names.
func generateEvents(ctx context.Context, config *Config, stats *Stats) []Event {
	logger.Get().Info(ctx, "generating candidate events", logger.Int("numEvents", config.NumEvents))

	events := make([]Event, config.NumEvents)
	for i := range events {
		events[i] = generateSingleEvent()
	}

	stats.EventsGenerated = len(events)
	return events
}

// generateAttended creates the attended events used to seed the profile.
// They cluster around one category so the taste profile has a signal.
func generateAttended(ctx context.Context, config *Config) []Event {
	logger.Get().Info(ctx, "generating attended events", logger.Int("attended", config.Attended))

	events := make([]Event, config.Attended)
	profile := categoryProfiles[0]
	for i := range events {
		events[i] = eventFromProfile(profile)
		// Attended events happened in the past.
		start := time.Now().UTC().AddDate(0, 0, -1-i)
		events[i].Start = start.Format(time.RFC3339)
	}
	return events
}

// generateSingleEvent creates one candidate event.
func generateSingleEvent() Event {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(categoryProfiles))))
	return eventFromProfile(categoryProfiles[n.Int64()])
}

func eventFromProfile(p categoryProfile) Event {
	days := getRandomFloat() * startHorizonDays
	start := time.Now().UTC().Add(time.Duration(days * hoursPerDay * float64(time.Hour)))

	return Event{
		Name:          p.name + "-" + pick(p.words) + "-" + shortID(),
		Category:      p.name,
		Price:         p.priceMin + getRandomFloat()*p.priceRange,
		Distance:      getRandomFloat() * 25,
		Popularity:    getRandomFloat() * 100,
		Description:   strings.Join([]string{pick(p.words), pick(p.words), p.name, "event"}, " "),
		DurationHours: 1 + getRandomFloat()*p.maxDuration,
		Start:         start.Format(time.RFC3339),
	}
}

// shortID returns a compact unique suffix for event names.
func shortID() string {
	id := uuid.New().String()
	return id[:8]
}
