// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Front ends never talk HTTP directly; they go through this interface.
type Service interface {
	// ListTasks returns the full task collection in backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask stores a new task.
	// Implementations do not validate; callers run Task.Validate first.
	CreateTask(ctx context.Context, task Task) error
}
