package models

import (
	"errors"
	"strings"
	"testing"
)

func chainTasks(role *Role, names ...string) []*Task {
	tasks := make([]*Task, len(names))
	for i, name := range names {
		t := &Task{Name: name, Description: "do " + name, Role: role}
		if i > 0 {
			t.Context = []string{names[i-1]}
		}
		tasks[i] = t
	}
	return tasks
}

func TestPipelineValidateChain(t *testing.T) {
	role := &Role{Name: "Analyst", Goal: "analyze"}
	p := &Pipeline{
		Name:  "test",
		Kind:  KindResearch,
		Roles: []*Role{role},
		Tasks: chainTasks(role, "a", "b", "c"),
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestPipelineValidateFanIn(t *testing.T) {
	role := &Role{Name: "Analyst", Goal: "analyze"}
	a := &Task{Name: "a", Description: "x", Role: role}
	b := &Task{Name: "b", Description: "x", Role: role}
	c := &Task{Name: "c", Description: "x", Role: role, Context: []string{"a", "b"}}
	p := &Pipeline{Name: "test", Roles: []*Role{role}, Tasks: []*Task{a, b, c}}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestPipelineValidateForwardReference(t *testing.T) {
	role := &Role{Name: "Analyst", Goal: "analyze"}
	a := &Task{Name: "a", Description: "x", Role: role, Context: []string{"b"}}
	b := &Task{Name: "b", Description: "x", Role: role}
	p := &Pipeline{Name: "test", Roles: []*Role{role}, Tasks: []*Task{a, b}}

	err := p.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error for forward context reference")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
}

func TestPipelineValidateUnknownReference(t *testing.T) {
	role := &Role{Name: "Analyst", Goal: "analyze"}
	a := &Task{Name: "a", Description: "x", Role: role, Context: []string{"ghost"}}
	p := &Pipeline{Name: "test", Roles: []*Role{role}, Tasks: []*Task{a}}

	err := p.Validate()
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("Validate() error = %v, want mention of unknown task", err)
	}
}

func TestPipelineValidateDuplicateNames(t *testing.T) {
	role := &Role{Name: "Analyst", Goal: "analyze"}
	a := &Task{Name: "a", Description: "x", Role: role}
	dup := &Task{Name: "a", Description: "y", Role: role}
	p := &Pipeline{Name: "test", Roles: []*Role{role}, Tasks: []*Task{a, dup}}

	if err := p.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for duplicate task names")
	}
}

func TestHasCyclicDependencies(t *testing.T) {
	role := &Role{Name: "Analyst", Goal: "analyze"}

	tests := []struct {
		name  string
		tasks []*Task
		want  bool
	}{
		{
			name:  "linear chain",
			tasks: chainTasks(role, "a", "b", "c"),
			want:  false,
		},
		{
			name: "self reference",
			tasks: []*Task{
				{Name: "a", Description: "x", Role: role, Context: []string{"a"}},
			},
			want: true,
		},
		{
			name: "two-node cycle",
			tasks: []*Task{
				{Name: "a", Description: "x", Role: role, Context: []string{"b"}},
				{Name: "b", Description: "x", Role: role, Context: []string{"a"}},
			},
			want: true,
		},
		{
			name: "unknown dependency ignored",
			tasks: []*Task{
				{Name: "a", Description: "x", Role: role, Context: []string{"missing"}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCyclicDependencies(tt.tasks); got != tt.want {
				t.Errorf("HasCyclicDependencies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("boom")

	perr := &PipelineExecutionError{Pipeline: "research", Task: "analysis", Err: cause}
	if !errors.Is(perr, cause) {
		t.Error("PipelineExecutionError should unwrap to its cause")
	}
	if !strings.Contains(perr.Error(), "analysis") {
		t.Errorf("PipelineExecutionError message %q should carry the task name", perr.Error())
	}

	cerr := &ConfigurationError{Missing: []string{"AZURE_API_KEY", "AZURE_API_BASE"}}
	if !strings.Contains(cerr.Error(), "AZURE_API_KEY") || !strings.Contains(cerr.Error(), "AZURE_API_BASE") {
		t.Errorf("ConfigurationError message %q should list missing variables", cerr.Error())
	}

	serr := &PersistenceError{Path: "/tmp/x.md", Err: cause}
	if !errors.Is(serr, cause) {
		t.Error("PersistenceError should unwrap to its cause")
	}

	terr := &ToolError{Tool: "DuckDuckGo Search", Err: cause}
	if !strings.Contains(terr.Error(), "failed") {
		t.Errorf("ToolError message %q should carry a failure marker", terr.Error())
	}
}
