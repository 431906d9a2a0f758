// Package types contains common types used across the application
package types

// Entry represents one ranked recommendation
type Entry struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Percent   float64 `json:"percent"`
	Aggregate float64 `json:"aggregate"`
}
