package models

import "time"

// RunResult is the terminal output of one pipeline execution: the final
// task's output plus every non-empty side-output file any task declared.
// A RunResult is created fresh per run and owned by the caller.
type RunResult struct {
	RunID       string            // Unique run identifier
	Kind        Kind              // Pipeline kind that produced this result
	Raw         string            // Final task's output (aggregate text)
	Files       map[string]string // Side-output filename -> content
	TaskOutputs map[string]string // Task name -> rendered output
	StartedAt   time.Time
	Duration    time.Duration
}

// File returns the named side-output content and whether it exists.
func (r *RunResult) File(name string) (string, bool) {
	content, ok := r.Files[name]
	return content, ok
}
