// Package store persists tasks for the reference backend.
package store

import (
	"context"
	"fmt"

	"taskboard/internal/service"
)

// Store holds the backend's task collection.
type Store interface {
	// All returns every task in insertion order.
	All(ctx context.Context) ([]service.Task, error)

	// Add appends a task.
	Add(ctx context.Context, task service.Task) error

	Close() error
}

// Seed is the collection a fresh in-memory backend starts with.
var Seed = []service.Task{
	{Title: "Complete Project Report", Content: "Prepare and finalize the project report for the annual review. Include data analysis, project milestones, and future recommendations."},
	{Title: "Fix Bug in Authentication Module", Content: "Resolve the issue in the authentication module that causes login failures for users with special characters in their passwords. Ensure compatibility with existing user data."},
	{Title: "Design New User Interface", Content: "Design a new user interface for the upcoming app release. Focus on improving usability and visual appeal, and incorporate feedback from the user experience testing."},
}

// Open returns the store for driver. "memory" (or empty) gives a seeded
// in-memory store; sqlite3, postgres and mysql open dsn.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemory(Seed...), nil
	case "sqlite3", "postgres", "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("store_dsn is required for %s", driver)
		}
		return OpenSQL(ctx, driver, dsn)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}
