package models

// Schema describes a structured-output constraint for a task. Normalize
// parses the raw model output, verifies it conforms, and returns the
// canonical serialized form passed to downstream tasks. A non-nil error is
// a task-level failure (the executor aborts the run).
type Schema interface {
	Name() string
	Normalize(raw string) (string, error)
}

// Task is one unit of pipeline work: an instruction template with named
// placeholders, the role that performs it, optional predecessor tasks whose
// outputs are injected as context, and optional output constraints.
//
// Templates use {name} placeholders; nested values use dot paths, e.g.
// {expense_breakdown.rent}. Placeholders are resolved at run time from the
// caller-supplied input map; an unresolved placeholder fails the task.
type Task struct {
	Name           string   // Unique identifier within the pipeline
	Description    string   // Instruction template with {placeholder} tokens
	ExpectedOutput string   // Description of the expected output shape
	Role           *Role    // Role that performs this task (required)
	Context        []string // Names of predecessor tasks whose outputs feed this one

	// OutputSchema, when set, forces the task result through structured
	// validation before downstream tasks may consume it.
	OutputSchema Schema

	// OutputFile, when set, exposes the task result in RunResult.Files
	// under this filename.
	OutputFile string
}

// Validate checks that the task has all required fields.
func (t *Task) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "task.name", Message: "task name is required"}
	}
	if t.Description == "" {
		return &ValidationError{Field: "task.description", Message: "task description is required"}
	}
	if t.Role == nil {
		return &ValidationError{Field: "task.role", Message: "task must be assigned a role"}
	}
	return nil
}

// HasCyclicDependencies reports whether the tasks' context edges contain a
// cycle, using DFS with color marking (white=unvisited, gray=visiting,
// black=visited). Self-references count as cycles.
func HasCyclicDependencies(tasks []*Task) bool {
	graph := make(map[string][]string)
	known := make(map[string]bool)

	for _, task := range tasks {
		known[task.Name] = true
		graph[task.Name] = nil
	}

	// Edge direction: predecessor -> dependent.
	for _, task := range tasks {
		for _, dep := range task.Context {
			if dep == task.Name {
				return true
			}
			if known[dep] {
				graph[dep] = append(graph[dep], task.Name)
			}
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)

	colors := make(map[string]int, len(known))

	var dfs func(string) bool
	dfs = func(node string) bool {
		colors[node] = gray
		for _, next := range graph[node] {
			if colors[next] == gray {
				return true
			}
			if colors[next] == white && dfs(next) {
				return true
			}
		}
		colors[node] = black
		return false
	}

	for name := range known {
		if colors[name] == white && dfs(name) {
			return true
		}
	}
	return false
}
