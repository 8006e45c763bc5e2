package store

import (
	"context"
	"sync"

	"taskboard/internal/service"
)

// Memory is a Store backed by a slice.
type Memory struct {
	mu    sync.RWMutex
	tasks []service.Task
}

// NewMemory returns a store holding tasks.
func NewMemory(tasks ...service.Task) *Memory {
	return &Memory{tasks: append([]service.Task(nil), tasks...)}
}

func (m *Memory) All(ctx context.Context) ([]service.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]service.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *Memory) Add(ctx context.Context, task service.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = append(m.tasks, task)
	return nil
}

func (m *Memory) Close() error { return nil }
