package models

import "fmt"

// Kind identifies one of the planning pipelines.
type Kind string

const (
	KindFinancial Kind = "financial"
	KindProduct   Kind = "product"
	KindResearch  Kind = "research"
)

// Pipeline is an ordered set of roles and the tasks that reference them.
// Execution is strictly sequential in declared task order; the context
// edges form a chain or a chain with one fan-in, never a general DAG.
// Pipelines are constructed once and reused across many runs.
type Pipeline struct {
	Name  string
	Kind  Kind
	Roles []*Role
	Tasks []*Task
}

// Validate checks structural integrity: every role and task is itself
// valid, task names are unique, and every context reference names an
// earlier task (which also rules out cycles, but the DFS check is kept as
// a backstop for definitions assembled programmatically).
func (p *Pipeline) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "pipeline.name", Message: "pipeline name is required"}
	}
	if len(p.Tasks) == 0 {
		return &ValidationError{Field: "pipeline.tasks", Message: "pipeline has no tasks"}
	}

	for _, role := range p.Roles {
		if err := role.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]int, len(p.Tasks))
	for i, task := range p.Tasks {
		if err := task.Validate(); err != nil {
			return err
		}
		if _, dup := seen[task.Name]; dup {
			return &ValidationError{
				Field:   "pipeline.tasks",
				Message: fmt.Sprintf("duplicate task name %q", task.Name),
			}
		}
		seen[task.Name] = i
	}

	for i, task := range p.Tasks {
		for _, dep := range task.Context {
			pos, ok := seen[dep]
			if !ok {
				return &ValidationError{
					Field:   "pipeline.tasks",
					Message: fmt.Sprintf("task %q references unknown task %q", task.Name, dep),
				}
			}
			if pos >= i {
				return &ValidationError{
					Field:   "pipeline.tasks",
					Message: fmt.Sprintf("task %q references %q which is not declared earlier", task.Name, dep),
				}
			}
		}
	}

	if HasCyclicDependencies(p.Tasks) {
		return &ValidationError{Field: "pipeline.tasks", Message: "task dependencies contain a cycle"}
	}
	return nil
}

// TaskNamed returns the task with the given name, or nil.
func (p *Pipeline) TaskNamed(name string) *Task {
	for _, t := range p.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}
