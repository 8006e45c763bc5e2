// Package controller keeps the rendered task list in step with the backend.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/service"
	"taskboard/internal/taskview"
)

// Alert messages shown to the user.
const (
	AlertMissingFields = "Please fill out both fields."
	AlertSaveFailed    = "Failed to save task."
)

// Alerter surfaces a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }

// Scheduler runs f once after d. The default uses time.AfterFunc.
type Scheduler func(d time.Duration, f func())

// Form is the content of the task-creation inputs.
type Form struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithAlerter sets where alerts go. Alerts are only logged otherwise.
func WithAlerter(a Alerter) Option {
	return func(c *Controller) { c.alert = a }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithFadeDelay overrides the pause before a removed element is detached.
func WithFadeDelay(d time.Duration) Option {
	return func(c *Controller) { c.fadeDelay = d }
}

// WithScheduler replaces time.AfterFunc for delayed detaches.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.after = s }
}

// WithBoard renders into an existing board.
func WithBoard(b *taskview.Board) Option {
	return func(c *Controller) { c.board = b }
}

// Controller fetches, submits and removes tasks on behalf of a front end.
type Controller struct {
	svc       service.Service
	board     *taskview.Board
	alert     Alerter
	logger    *slog.Logger
	fadeDelay time.Duration
	after     Scheduler

	mu   sync.Mutex
	form Form
}

// New creates a controller backed by svc.
func New(svc service.Service, opts ...Option) *Controller {
	c := &Controller{
		svc:       svc,
		fadeDelay: config.DefaultFadeDelay,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.board == nil {
		c.board = taskview.NewBoard()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Board returns the board the controller renders into.
func (c *Controller) Board() *taskview.Board { return c.board }

// FadeDelay returns the pause between marking and detaching an element.
func (c *Controller) FadeDelay() time.Duration { return c.fadeDelay }

// LoadTasks fetches the collection and replaces the rendered list with it.
// On failure the error is logged and the current rendering is kept; the
// error is also returned for callers that report it.
func (c *Controller) LoadTasks(ctx context.Context) error {
	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.logger.Error("failed to load tasks", "err", err)
		return err
	}
	c.board.Replace(tasks)
	c.logger.Debug("tasks loaded", "count", len(tasks), "state", c.board.State())
	return nil
}

// SubmitTask creates a task from the given inputs.
// Empty fields raise AlertMissingFields and nothing is sent. A failed create
// raises AlertSaveFailed and keeps the inputs. On success the inputs are
// cleared and the list is reloaded.
func (c *Controller) SubmitTask(ctx context.Context, title, content string) error {
	task := service.Task{Title: title, Content: content}
	c.setForm(Form{Title: title, Content: content})

	if err := task.Validate(); err != nil {
		c.raise(AlertMissingFields)
		return err
	}

	if err := c.svc.CreateTask(ctx, task); err != nil {
		c.logger.Error("failed to save task", "err", err)
		c.raise(AlertSaveFailed)
		return err
	}

	c.CancelTask()
	// A failed refresh is logged by LoadTasks; the task itself was saved.
	_ = c.LoadTasks(ctx)
	return nil
}

// CancelTask clears the inputs.
func (c *Controller) CancelTask() {
	c.setForm(Form{})
}

// Form returns the current inputs.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// RemoveTaskView fades out the element with key and detaches it after the
// fade delay. The backend is not told; the task comes back on the next load.
// Returns false for an unknown key.
func (c *Controller) RemoveTaskView(key string) bool {
	if !c.BeginRemove(key) {
		return false
	}
	c.after(c.fadeDelay, func() { c.FinishRemove(key) })
	return true
}

// BeginRemove marks the element fading without scheduling the detach.
// Front ends with their own timers pair it with FinishRemove.
func (c *Controller) BeginRemove(key string) bool {
	ok := c.board.MarkFading(key)
	if !ok {
		c.logger.Debug("remove ignored, no such task view", "key", key)
	}
	return ok
}

// FinishRemove detaches the element. The board falls back to the empty state
// when it was the last one.
func (c *Controller) FinishRemove(key string) {
	if c.board.Detach(key) {
		c.logger.Debug("task view removed", "key", key, "state", c.board.State())
	}
}

func (c *Controller) setForm(f Form) {
	c.mu.Lock()
	c.form = f
	c.mu.Unlock()
}

func (c *Controller) raise(msg string) {
	c.logger.Debug("alert", "msg", msg)
	if c.alert != nil {
		c.alert.Alert(msg)
	}
}

// IsValidation reports whether err came from the presence checks.
func IsValidation(err error) bool {
	return errors.Is(err, service.ErrInvalidTask)
}
