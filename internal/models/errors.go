package models

import (
	"fmt"
	"strings"
)

// ConfigurationError reports required credentials missing from the
// environment. It blocks every pipeline run and is never retried.
type ConfigurationError struct {
	Missing []string // Names of the missing environment variables
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", "))
}

// ValidationError reports a caller-supplied input that fails a
// precondition. No pipeline run is attempted.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ToolError reports an external search/scrape failure. Tools absorb these
// at the boundary (converted to inline marker strings); the type exists so
// tool internals can wrap causes before conversion.
type ToolError struct {
	Tool string
	Err  error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ToolError) Unwrap() error { return e.Err }

// PipelineExecutionError reports a task-level failure (model error,
// structured-output violation, unresolved placeholder). It aborts the
// whole run and carries the failing task's identity.
type PipelineExecutionError struct {
	Pipeline string
	Task     string
	Err      error
}

// Error implements the error interface.
func (e *PipelineExecutionError) Error() string {
	return fmt.Sprintf("pipeline %s: task %s: %v", e.Pipeline, e.Task, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PipelineExecutionError) Unwrap() error { return e.Err }

// PersistenceError reports a failed report or archive write. Callers
// degrade gracefully: the in-memory result stays available.
type PersistenceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error { return e.Err }
