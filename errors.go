package gamesrv

import (
	"errors"
	"fmt"
)

// Common errors returned by core operations
var (
	// ErrExecutableNotFound indicates the server directory lacks the managed executable
	ErrExecutableNotFound = errors.New("gamesrv: server executable not found")

	// ErrProcessExited indicates the managed process is no longer running
	ErrProcessExited = errors.New("gamesrv: process exited")

	// ErrNotFound indicates a content unit is missing from both trees
	ErrNotFound = errors.New("gamesrv: mod not found")

	// ErrAlreadyInState indicates a unit is already enabled (or disabled)
	ErrAlreadyInState = errors.New("gamesrv: mod already in requested state")

	// ErrInvalidFormat indicates a file is not a valid mod package
	ErrInvalidFormat = errors.New("gamesrv: not a zip package")

	// ErrUnreadableArchive indicates a package could not be opened as a zip
	ErrUnreadableArchive = errors.New("gamesrv: unreadable archive")

	// ErrConfigNotFound indicates a server directory lacks ServerConfig.toml
	ErrConfigNotFound = errors.New("gamesrv: ServerConfig.toml not found")

	// ErrAlreadyRunning indicates a process already exists for a server directory
	ErrAlreadyRunning = errors.New("gamesrv: server already running")

	// ErrNotRunning indicates no process exists for a server directory
	ErrNotRunning = errors.New("gamesrv: server not running")
)

// OpError represents an error from a core operation
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Path is the file path involved in the operation
	Path string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("gamesrv %s %q: %v", e.Op.String(), e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from bulk operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
