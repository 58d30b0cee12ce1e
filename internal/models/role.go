// Package models defines the core data types for planning pipelines:
// roles, tasks, pipeline definitions, run results, and the error taxonomy
// shared across the executor and its callers.
package models

import "context"

// Tool is a callable capability bound to a Role (web search, page scrape).
// Run never returns an error: implementations must absorb failures and
// return an inline failure marker string instead, so a broken tool cannot
// abort the task that invoked it.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context, input string) string
}

// Role is a named persona that performs tasks. Roles are immutable once
// constructed and safe to reuse across many runs of the same pipeline.
type Role struct {
	Name      string // Role title, e.g. "Budgeting Advisor"
	Goal      string // One-sentence goal statement
	Backstory string // Persona text injected into the system prompt
	Tools     []Tool // Callable capabilities (optional)

	// Temperature is the sampling temperature for this role's model calls.
	// Zero means "use the provider default".
	Temperature float32

	// Behavioral flags
	AllowDelegation bool // Whether the role may hand work to other roles
	Memory          bool // Whether the role keeps conversational memory
	MaxRetries      int  // Model invocation retries (0 = no retry)
}

// Validate checks that the role has the fields every pipeline requires.
func (r *Role) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "role.name", Message: "role name is required"}
	}
	if r.Goal == "" {
		return &ValidationError{Field: "role.goal", Message: "role goal is required"}
	}
	return nil
}
