// Package restapi implements the service.Service interface against the
// task backend's JSON endpoints.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

const (
	// ListPath returns the task collection.
	ListPath = "/tasks"

	// CreatePath accepts a new task.
	CreatePath = "/tasks/create"

	// APITimeout is the default timeout for API calls.
	APITimeout = config.DefaultTimeout

	// maxErrorBody bounds how much of a rejection body ends up in an error.
	maxErrorBody = 512
)

// ErrUnexpectedStatus is wrapped by errors for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client implements service.Service over HTTP.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

// New creates a client for the backend named in cfg.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	base := strings.TrimRight(cfg.Settings.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("base_url is not configured")
	}
	return &Client{
		http:    &http.Client{},
		baseURL: base,
		timeout: cfg.Settings.Timeout,
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: APITimeout,
	}
}

// ListTasks fetches the task collection.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ListPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var tasks []service.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask posts a new task as JSON.
func (c *Client) CreateTask(ctx context.Context, task service.Task) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(task)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CreatePath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// checkStatus turns a non-2xx response into an error carrying the status
// and the start of the body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	text := strings.TrimSpace(string(msg))
	if text == "" {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, resp.Status, text)
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}
