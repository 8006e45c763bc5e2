// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, missing fields, unknown format).
	UserError = 1

	// ConfigError indicates an unreadable config file or an unusable store.
	ConfigError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
