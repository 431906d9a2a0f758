package seedevents

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/festa/pkg/logger"
)

// Runner configuration constants.
const (
	processingWait = 5 * time.Second
)

// Run executes the complete seed-and-verify flow: seed the taste
// profile, submit candidates, then read the resulting recommendations.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting festa seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("events", config.NumEvents),
		logger.Int("attended", config.Attended),
		logger.Int("workers", config.Workers),
		logger.Int("topN", config.TopN),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if config.Attended > 0 {
		attended := generateAttended(ctx, config)
		if err := seedAttended(ctx, config, attended, stats); err != nil {
			return fmt.Errorf("profile seeding failed: %w", err)
		}
	}

	events := generateEvents(ctx, config, stats)
	if err := submitEvents(ctx, config, events, stats); err != nil {
		return fmt.Errorf("candidate submission failed: %w", err)
	}

	logger.Get().Info(ctx, "waiting for candidates to be scored")
	select {
	case <-ctx.Done():
		return fmt.Errorf("run cancelled: %w", ctx.Err())
	case <-time.After(processingWait):
	}

	entries, err := fetchRecommendations(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("recommendation retrieval failed: %w", err)
	}
	displayRecommendations(ctx, config, entries)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayRecommendations logs the fetched listing.
func displayRecommendations(ctx context.Context, config *Config, entries []Entry) {
	logger.Get().Info(ctx, "top recommendations", logger.Int("count", len(entries)))
	for _, entry := range entries {
		if !config.Verbose && entry.Rank > 10 {
			break
		}
		logger.Get().Info(ctx, "recommendation",
			logger.Int("rank", entry.Rank),
			logger.String("name", entry.Name),
			logger.String("label", entry.Label),
			logger.Float64("percent", entry.Percent),
		)
	}
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("attendedSeeded", stats.AttendedSeeded),
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsSuccessful", stats.EventsSuccessful),
		logger.Int("eventsDuplicate", stats.EventsDuplicate),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.Int("recommendations", stats.Recommendations),
		logger.String("duration", stats.Duration.String()),
	)
}
