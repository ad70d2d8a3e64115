package tasks

import (
	"context"
	"errors"
	"juniorguru-sync/internal/components/telemetry"
	"testing"

	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, ran *[]string, tasks map[string][]string, order ...string) *Registry {
	t.Helper()
	r := NewRegistry(&telemetry.Mock{})
	for _, name := range order {
		require.NoError(t, r.Register(Task{
			Name:         name,
			Dependencies: tasks[name],
			Run: func(ctx context.Context) error {
				*ran = append(*ran, name)
				return nil
			},
		}))
	}
	return r
}

func TestPlan(t *testing.T) {
	var ran []string
	r := newRegistry(t, &ran, map[string][]string{
		"align-company-subscriptions": {"subscriptions"},
		"weekly-plans":                {},
		"build-jobs":                  {"scrape-jobs"},
	}, "align-company-subscriptions", "subscriptions", "weekly-plans", "scrape-jobs", "build-jobs")

	plan, err := r.Plan()
	require.NoError(t, err)
	require.Equal(t, []string{
		"subscriptions",
		"align-company-subscriptions",
		"weekly-plans",
		"scrape-jobs",
		"build-jobs",
	}, plan)

	plan, err = r.Plan("align-company-subscriptions")
	require.NoError(t, err)
	require.Equal(t, []string{"subscriptions", "align-company-subscriptions"}, plan)

	require.NoError(t, r.Run(context.Background(), "build-jobs"))
	require.Equal(t, []string{"scrape-jobs", "build-jobs"}, ran)
}

func TestPlanErrors(t *testing.T) {
	var ran []string
	r := newRegistry(t, &ran, map[string][]string{
		"a": {"b"},
		"b": {"a"},
		"c": {"missing"},
	}, "a", "b", "c")

	_, err := r.Plan("a")
	require.ErrorContains(t, err, "dependency cycle: a -> b -> a")

	_, err = r.Plan("c")
	require.ErrorContains(t, err, `unknown task "missing" required by "c"`)

	_, err = r.Plan("nope")
	require.ErrorContains(t, err, `unknown task "nope"`)

	require.Error(t, r.Register(Task{Name: "a"}))
	require.Error(t, r.Register(Task{}))
}

func TestRunStopsOnFailure(t *testing.T) {
	var ran []string
	tel := &telemetry.Mock{}
	r := NewRegistry(tel)
	require.NoError(t, r.Register(Task{
		Name: "first",
		Run:  func(ctx context.Context) error { return errors.New("boom") },
	}))
	require.NoError(t, r.Register(Task{
		Name:         "second",
		Dependencies: []string{"first"},
		Run: func(ctx context.Context) error {
			ran = append(ran, "second")
			return nil
		},
	}))

	err := r.Run(context.Background())
	require.ErrorContains(t, err, "task first: boom")
	require.Empty(t, ran)
	require.True(t, tel.Has("broken", report_tasks_run))
}

func TestNames(t *testing.T) {
	var ran []string
	r := newRegistry(t, &ran, map[string][]string{
		"align-company-subscriptions": {"subscriptions"},
	}, "subscriptions", "align-company-subscriptions", "weekly-plans")

	names := r.Names()
	require.Equal(t, []string{"subscriptions", "align-company-subscriptions", "weekly-plans"}, names)

	names[0] = "changed"
	require.Equal(t, "subscriptions", r.Names()[0])
	require.Empty(t, ran)
}
