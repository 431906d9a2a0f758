package seedevents

import "time"

// Config holds configuration for the seeding run
type Config struct {
	BaseURL   string        // Base URL of the service
	NumEvents int           // Number of candidate events to generate
	Attended  int           // Number of attended events to seed the profile with
	TopN      int           // Number of recommendations to fetch afterwards
	Workers   int           // Number of concurrent submitters
	Timeout   time.Duration // HTTP request timeout
	LogFile   string        // Log file for run output
	Verbose   bool          // Enable verbose logging
}

// Event mirrors the wire schema for event submissions
type Event struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Distance      float64 `json:"distance"`
	Popularity    float64 `json:"popularity"`
	Description   string  `json:"description"`
	DurationHours float64 `json:"duration_hours"`
	Start         string  `json:"start"`
}

// Entry represents one ranked recommendation
type Entry struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Percent   float64 `json:"percent"`
	Aggregate float64 `json:"aggregate"`
}

// AckResponse represents the response from event submission
type AckResponse struct {
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
	SubmissionID string `json:"submission_id"`
}

// Stats holds run statistics
type Stats struct {
	AttendedSeeded   int
	EventsGenerated  int
	EventsSubmitted  int
	EventsSuccessful int
	EventsDuplicate  int
	EventsFailed     int
	Recommendations  int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
