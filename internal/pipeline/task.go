package pipeline

import (
	"context"
	"fmt"
)

// Task is one runnable step of the pipeline.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc adapts a plain function into a Task.
type TaskFunc struct {
	name string
	fn   func(ctx context.Context) error
}

// NewTaskFunc creates a task from a name and a function
func NewTaskFunc(name string, fn func(ctx context.Context) error) *TaskFunc {
	return &TaskFunc{name: name, fn: fn}
}

// Name returns the task name
func (t *TaskFunc) Name() string {
	return t.name
}

// Run executes the task function
func (t *TaskFunc) Run(ctx context.Context) error {
	return t.fn(ctx)
}

type entry struct {
	task Task
	deps []string
}

// Registry holds the named tasks of a pipeline together with their declared
// dependencies.
type Registry struct {
	entries map[string]entry
}

// NewRegistry creates an empty task registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a task and its dependency names. Dependencies may be
// registered later; they are checked at run time.
func (r *Registry) Register(task Task, deps ...string) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	name := task.Name()
	if name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("task %s is already registered", name)
	}
	r.entries[name] = entry{task: task, deps: deps}
	return nil
}

// IsRegistered checks if a task with the given name is registered
func (r *Registry) IsRegistered(name string) bool {
	_, exists := r.entries[name]
	return exists
}

// Names returns a list of all registered task names
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
