package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner executes tasks strictly one after another in dependency order.
// Each task runs at most once per invocation; the first failure aborts every
// remaining step.
type Runner struct {
	registry *Registry
}

// NewRunner creates a runner over a task registry
func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry}
}

// IsTask reports whether the named task exists.
func (r *Runner) IsTask(name string) bool {
	return r.registry.IsRegistered(name)
}

// Run resolves the transitive dependencies of the named task and executes
// the resulting sequence. Unknown tasks, unknown dependencies, and
// dependency cycles are errors.
func (r *Runner) Run(ctx context.Context, name string) error {
	order, err := r.resolve(name)
	if err != nil {
		return err
	}

	start := time.Now()
	slog.Info("starting pipeline",
		"goal", name,
		"task_count", len(order))

	for idx, task := range order {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline cancelled before task %s: %w", task.Name(), err)
		}

		taskStart := time.Now()
		slog.Info("executing task",
			"index", idx,
			"task_name", task.Name())

		if err := task.Run(ctx); err != nil {
			slog.Error("task failed, aborting remaining steps",
				"task_name", task.Name(),
				"remaining", len(order)-idx-1,
				"error", err)
			return fmt.Errorf("task %s failed: %w", task.Name(), err)
		}

		slog.Info("task complete",
			"task_name", task.Name(),
			"duration", time.Since(taskStart))
	}

	slog.Info("pipeline complete",
		"goal", name,
		"duration", time.Since(start))
	return nil
}

// resolve returns the execution order for the goal: a depth-first
// post-order over the dependency graph, so every dependency precedes its
// dependents.
func (r *Runner) resolve(goal string) ([]Task, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)
	var order []Task

	var visit func(name string, via string) error
	visit = func(name string, via string) error {
		e, exists := r.registry.entries[name]
		if !exists {
			if via == "" {
				return fmt.Errorf("unknown task: %s", name)
			}
			return fmt.Errorf("task %s depends on unknown task %s", via, name)
		}
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle through task %s", name)
		}
		state[name] = visiting
		for _, dep := range e.deps {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, e.task)
		return nil
	}

	if err := visit(goal, ""); err != nil {
		return nil, err
	}
	return order, nil
}
