package pipeline

import (
	"context"
	"fmt"
	"testing"
)

// recordingTask appends its name to a shared log when run.
func recordingTask(name string, log *[]string, err error) Task {
	return NewTaskFunc(name, func(ctx context.Context) error {
		*log = append(*log, name)
		return err
	})
}

func TestRunnerExecutesDependenciesFirst(t *testing.T) {
	registry := NewRegistry()
	var log []string

	if err := registry.Register(recordingTask("run", &log, nil)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(recordingTask("gen", &log, nil), "run"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(recordingTask("display", &log, nil), "gen"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	runner := NewRunner(registry)
	if err := runner.Run(context.Background(), "display"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{"run", "gen", "display"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, log)
			break
		}
	}
}

func TestRunnerRunsEachTaskOnce(t *testing.T) {
	registry := NewRegistry()
	var log []string

	// diamond: all -> {check, display}, display -> gen -> run, check -> run
	_ = registry.Register(recordingTask("run", &log, nil))
	_ = registry.Register(recordingTask("gen", &log, nil), "run")
	_ = registry.Register(recordingTask("display", &log, nil), "gen")
	_ = registry.Register(recordingTask("check", &log, nil), "run")
	_ = registry.Register(recordingTask("all", &log, nil), "check", "display")

	runner := NewRunner(registry)
	if err := runner.Run(context.Background(), "all"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	seen := make(map[string]int)
	for _, name := range log {
		seen[name]++
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("Expected task %s to run once, ran %d times", name, n)
		}
	}
	if log[len(log)-1] != "all" {
		t.Errorf("Expected all to run last, got order %v", log)
	}
}

func TestRunnerFailureAbortsDependents(t *testing.T) {
	registry := NewRegistry()
	var log []string

	_ = registry.Register(recordingTask("run", &log, fmt.Errorf("render exploded")))
	_ = registry.Register(recordingTask("gen", &log, nil), "run")
	_ = registry.Register(recordingTask("display", &log, nil), "gen")

	runner := NewRunner(registry)
	err := runner.Run(context.Background(), "display")
	if err == nil {
		t.Fatal("Expected failure to propagate")
	}

	for _, name := range log {
		if name == "gen" || name == "display" {
			t.Errorf("Expected %s not to run after its dependency failed", name)
		}
	}
	if len(log) != 1 {
		t.Errorf("Expected only the failing task to run, got %v", log)
	}
}

func TestRunnerUnknownTask(t *testing.T) {
	runner := NewRunner(NewRegistry())
	if err := runner.Run(context.Background(), "missing"); err == nil {
		t.Error("Expected error for an unknown goal")
	}
}

func TestRunnerUnknownDependency(t *testing.T) {
	registry := NewRegistry()
	var log []string
	_ = registry.Register(recordingTask("gen", &log, nil), "run")

	runner := NewRunner(registry)
	if err := runner.Run(context.Background(), "gen"); err == nil {
		t.Error("Expected error for an unknown dependency")
	}
	if len(log) != 0 {
		t.Errorf("Expected no tasks to run, got %v", log)
	}
}

func TestRunnerDetectsCycle(t *testing.T) {
	registry := NewRegistry()
	var log []string
	_ = registry.Register(recordingTask("a", &log, nil), "b")
	_ = registry.Register(recordingTask("b", &log, nil), "a")

	runner := NewRunner(registry)
	if err := runner.Run(context.Background(), "a"); err == nil {
		t.Error("Expected error for a dependency cycle")
	}
}

func TestRunnerHonorsCancellation(t *testing.T) {
	registry := NewRegistry()
	var log []string
	_ = registry.Register(recordingTask("run", &log, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(registry)
	if err := runner.Run(ctx, "run"); err == nil {
		t.Error("Expected error for a cancelled context")
	}
	if len(log) != 0 {
		t.Errorf("Expected no tasks to run after cancellation, got %v", log)
	}
}

func TestRegistryRejectsDuplicateTasks(t *testing.T) {
	registry := NewRegistry()
	var log []string
	if err := registry.Register(recordingTask("run", &log, nil)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(recordingTask("run", &log, nil)); err == nil {
		t.Error("Expected error registering a duplicate task")
	}
}

func TestRegistryRejectsNilAndUnnamedTasks(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Error("Expected error registering a nil task")
	}
	var log []string
	if err := registry.Register(recordingTask("", &log, nil)); err == nil {
		t.Error("Expected error registering an unnamed task")
	}
}
