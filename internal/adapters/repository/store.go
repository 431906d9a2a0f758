// Package repository defines the verdict store interface and errors.
package repository

import "context"

// Entry represents one stored verdict.
type Entry struct {
	Rank      int
	Name      string
	Label     string
	Percent   float64
	Aggregate float64
}

// Store provides read/write access to scored candidates.
type Store interface {
	// Upsert records or replaces the verdict for an event. Re-scoring the
	// same event overwrites the previous verdict.
	Upsert(ctx context.Context, name string, label string, percent, aggregate float64) error

	// Rank returns the current rank and verdict for an event.
	// Returns ErrNotFound if the event is unknown.
	Rank(ctx context.Context, name string) (Entry, error)

	// TopN returns the top-N entries ordered by percent desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of candidates tracked in the store.
	Count(ctx context.Context) int
}
