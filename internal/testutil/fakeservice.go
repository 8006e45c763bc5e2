// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskboard/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu      sync.RWMutex
	tasks   []service.Task
	created []service.Task

	listCalls   int
	createCalls int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error

	// NilList makes ListTasks answer nil instead of an empty slice.
	NilList bool
}

// NewFakeService creates a new FakeService holding tasks.
func NewFakeService(tasks ...service.Task) *FakeService {
	return &FakeService{tasks: append([]service.Task(nil), tasks...)}
}

// AddTask adds a task directly, bypassing CreateTask bookkeeping.
func (f *FakeService) AddTask(title, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{Title: title, Content: content})
}

// SetTasks replaces the stored collection.
func (f *FakeService) SetTasks(tasks []service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]service.Task(nil), tasks...)
}

// Created returns every task passed to CreateTask, including failed attempts.
func (f *FakeService) Created() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.created...)
}

// ListCalls returns how many times ListTasks ran.
func (f *FakeService) ListCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listCalls
}

// CreateCalls returns how many times CreateTask ran.
func (f *FakeService) CreateCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.createCalls
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++

	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	if f.NilList && len(f.tasks) == 0 {
		return nil, nil
	}
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.created = append(f.created, task)

	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.tasks = append(f.tasks, task)
	return nil
}
