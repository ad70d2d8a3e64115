package tasks

import (
	"context"
	"fmt"
	"juniorguru-sync/internal/components/telemetry"
	"strings"
	"time"
)

const report_tasks_run = "tasks.run"

type Task struct {
	Name         string
	Dependencies []string
	Run          func(ctx context.Context) error
}

// Registry holds the sync tasks and runs them in dependency order.
type Registry struct {
	tasks map[string]Task
	names []string
	tel   telemetry.API
}

func NewRegistry(tel telemetry.API) *Registry {
	return &Registry{
		tasks: make(map[string]Task),
		tel:   telemetry.NewScopedAPI("tasks", tel),
	}
}

func (r *Registry) Register(task Task) error {
	if task.Name == "" {
		return fmt.Errorf("task without a name")
	}
	if _, ok := r.tasks[task.Name]; ok {
		return fmt.Errorf("task %q is already registered", task.Name)
	}
	r.tasks[task.Name] = task
	r.names = append(r.names, task.Name)
	return nil
}

// Names lists the registered tasks in registration order.
func (r *Registry) Names() []string {
	return append([]string{}, r.names...)
}

// Plan returns the given tasks together with everything they depend on,
// dependencies first. Without names it plans every registered task.
func (r *Registry) Plan(names ...string) ([]string, error) {
	if len(names) == 0 {
		names = r.names
	}

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int)
	var plan []string

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		task, ok := r.tasks[name]
		if !ok {
			if len(path) > 0 {
				return fmt.Errorf("unknown task %q required by %q", name, path[len(path)-1])
			}
			return fmt.Errorf("unknown task %q", name)
		}
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle: %s -> %s", strings.Join(path, " -> "), name)
		}

		state[name] = visiting
		for _, dep := range task.Dependencies {
			err := visit(dep, append(path, name))
			if err != nil {
				return err
			}
		}
		state[name] = done
		plan = append(plan, name)
		return nil
	}

	for _, name := range names {
		err := visit(name, nil)
		if err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// Run runs the planned tasks one after another and stops at the first failure.
func (r *Registry) Run(ctx context.Context, names ...string) error {
	plan, err := r.Plan(names...)
	if err != nil {
		return err
	}
	for _, name := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		r.tel.ReportDebug("running task", name)
		err := r.tasks[name].Run(ctx)
		if err != nil {
			r.tel.ReportBroken(report_tasks_run, fmt.Errorf("%s: %w", name, err))
			return fmt.Errorf("task %s: %w", name, err)
		}
		r.tel.ReportDebug("finished task", name, time.Since(start).String())
	}
	return nil
}
