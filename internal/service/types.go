// Package service defines the backend-agnostic interface for task operations.
package service

import "errors"

// ErrInvalidTask is returned when a task is missing its title or content.
var ErrInvalidTask = errors.New("title and content are required")

// Task represents a single task item as exchanged with the backend.
type Task struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Validate performs the presence checks required before a task is sent.
// Any non-empty string passes, whitespace included.
func (t Task) Validate() error {
	if t.Title == "" || t.Content == "" {
		return ErrInvalidTask
	}
	return nil
}
