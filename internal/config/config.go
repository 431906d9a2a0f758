// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the in-memory candidate queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxRecommendations caps GET /recommendations?limit.
	MaxRecommendations int `koanf:"max_recommendations"`

	// SimilarityWeight, CategoryWeight and HistoryWeight control the
	// interest-score blend. They should sum to 1.
	SimilarityWeight float64 `koanf:"similarity_weight"`
	CategoryWeight   float64 `koanf:"category_weight"`
	HistoryWeight    float64 `koanf:"history_weight"`

	// CentroidSamples sets the sampling resolution of the defuzzifier.
	CentroidSamples int `koanf:"centroid_samples"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		EventQueueSize:     100_000,
		WorkerCount:        runtime.NumCPU() * 4,
		DedupeSize:         500_000,
		MaxRecommendations: 100,
		SimilarityWeight:   0.6,
		CategoryWeight:     0.3,
		HistoryWeight:      0.1,
		CentroidSamples:    201,
	}
}
