// Package pipeline executes planning pipelines: ordered task sequences
// performed by roles, with predecessor outputs threaded as context and
// progress reported through real task-completion events.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/advisor/internal/models"
)

// Executor runs pipeline definitions against a RoleRunner. Execution is
// strictly sequential: tasks run in declared order, one at a time, and a
// later task sees an earlier task's output only through a declared
// context edge. An Executor is safe to reuse across runs.
type Executor struct {
	runner RoleRunner
	sinks  []EventSink
}

// New creates an executor. Sinks receive progress events synchronously in
// emission order.
func New(runner RoleRunner, sinks ...EventSink) *Executor {
	return &Executor{runner: runner, sinks: sinks}
}

// Run executes every task of def in declared order and returns the
// aggregate result. A task failure aborts the run with a
// PipelineExecutionError naming the failing task; tool failures inside a
// role never reach this level.
func (e *Executor) Run(ctx context.Context, def *models.Pipeline, inputs map[string]string) (*models.RunResult, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	started := time.Now()
	total := len(def.Tasks)

	e.emit(Event{Type: EventRunStarted, RunID: runID, Pipeline: def.Name, Kind: def.Kind, Total: total, Time: started})

	outputs := make(map[string]string, total)
	files := make(map[string]string)

	for i, task := range def.Tasks {
		e.emit(Event{Type: EventTaskStarted, RunID: runID, Pipeline: def.Name, Kind: def.Kind, Task: task.Name, TaskNum: i + 1, Total: total, Time: time.Now()})

		output, err := e.runTask(ctx, def, task, inputs, outputs)
		if err != nil {
			perr := &models.PipelineExecutionError{Pipeline: def.Name, Task: task.Name, Err: err}
			e.emit(Event{Type: EventTaskFailed, RunID: runID, Pipeline: def.Name, Kind: def.Kind, Task: task.Name, TaskNum: i + 1, Total: total, Err: perr, Time: time.Now()})
			e.emit(Event{Type: EventRunFailed, RunID: runID, Pipeline: def.Name, Kind: def.Kind, Total: total, Err: perr, Time: time.Now()})
			return nil, perr
		}

		outputs[task.Name] = output
		if task.OutputFile != "" && strings.TrimSpace(output) != "" {
			files[task.OutputFile] = output
		}

		e.emit(Event{Type: EventTaskCompleted, RunID: runID, Pipeline: def.Name, Kind: def.Kind, Task: task.Name, TaskNum: i + 1, Total: total, Time: time.Now()})
	}

	final := def.Tasks[total-1]
	result := &models.RunResult{
		RunID:       runID,
		Kind:        def.Kind,
		Raw:         outputs[final.Name],
		Files:       files,
		TaskOutputs: outputs,
		StartedAt:   started,
		Duration:    time.Since(started),
	}

	e.emit(Event{Type: EventRunCompleted, RunID: runID, Pipeline: def.Name, Kind: def.Kind, Total: total, Time: time.Now()})
	return result, nil
}

// runTask renders one task's prompt, invokes its role, and applies the
// structured-output constraint if declared.
func (e *Executor) runTask(ctx context.Context, def *models.Pipeline, task *models.Task, inputs, outputs map[string]string) (string, error) {
	rendered, err := renderTemplate(task.Description, inputs)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(task, rendered, outputs)

	output, err := e.runner.RunRole(ctx, task.Role, prompt, task.OutputSchema != nil)
	if err != nil {
		return "", err
	}

	if task.OutputSchema != nil {
		normalized, err := task.OutputSchema.Normalize(output)
		if err != nil {
			return "", fmt.Errorf("structured output does not conform to %s: %w", task.OutputSchema.Name(), err)
		}
		output = normalized
	}
	return output, nil
}

// buildPrompt assembles the final prompt: rendered instruction, expected
// output shape, and context blocks from declared predecessor tasks.
func buildPrompt(task *models.Task, rendered string, outputs map[string]string) string {
	var sb strings.Builder
	sb.WriteString(rendered)

	if task.ExpectedOutput != "" {
		sb.WriteString("\n\nExpected output:\n")
		sb.WriteString(task.ExpectedOutput)
	}

	for _, dep := range task.Context {
		prior, ok := outputs[dep]
		if !ok {
			// Validate() guarantees declared predecessors ran first.
			continue
		}
		fmt.Fprintf(&sb, "\n\n---\nContext from task %q:\n\n%s", dep, prior)
	}
	return sb.String()
}

func (e *Executor) emit(ev Event) {
	for _, sink := range e.sinks {
		sink.Handle(ev)
	}
}
