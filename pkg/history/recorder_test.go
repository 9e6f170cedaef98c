package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/weftlabs/weft/pkg/api"
)

func testClock(start time.Time) func() time.Time {
	at := start
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func TestRecorderCompletedRun(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rec := NewRecorder(store, WithRecorderClock(testClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))))

	rec.OnRunStart(ctx, "orders", "run-1", "load")

	got, err := store.GetRun("run-1")
	require.NoError(t, err)
	require.Equal(t, StatusRunning, got.Status)
	require.Equal(t, "orders", got.Workflow)
	require.Equal(t, "load", got.Start)
	require.False(t, got.StartedAt.IsZero())
	require.True(t, got.FinishedAt.IsZero())

	rec.OnStepExecuted(ctx, "orders", "run-1", api.TraceEntry{Step: "load", OK: true}, time.Millisecond)
	rec.OnStepExecuted(ctx, "orders", "run-1", api.TraceEntry{Step: "charge", OK: false, Error: "card declined"}, time.Millisecond)
	rec.OnRunCompleted(ctx, "orders", "run-1", 2)

	got, err = store.GetRun("run-1")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, got.Status)
	require.Equal(t, 2, got.StepsRun)
	require.Equal(t, []StepRecord{
		{Step: "load", OK: true},
		{Step: "charge", OK: false, Error: "card declined"},
	}, got.Steps)
	require.Empty(t, got.Error)
	require.True(t, got.FinishedAt.After(got.StartedAt))
}

func TestRecorderFailedRun(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rec := NewRecorder(store)

	rec.OnRunStart(ctx, "orders", "run-1", "load")
	rec.OnStepExecuted(ctx, "orders", "run-1", api.TraceEntry{Step: "load", OK: true}, time.Millisecond)
	rec.OnRunFailed(ctx, "orders", "run-1", errors.New(`unknown step "chrage"`))

	got, err := store.GetRun("run-1")
	require.NoError(t, err)
	require.Equal(t, StatusFailed, got.Status)
	require.Equal(t, `unknown step "chrage"`, got.Error)
	require.Len(t, got.Steps, 1)
}

func TestRecorderTracksRunsIndependently(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rec := NewRecorder(store)

	rec.OnRunStart(ctx, "orders", "run-1", "load")
	rec.OnRunStart(ctx, "orders", "run-2", "load")
	rec.OnStepExecuted(ctx, "orders", "run-1", api.TraceEntry{Step: "load", OK: true}, 0)
	rec.OnRunCompleted(ctx, "orders", "run-1", 1)

	one, err := store.GetRun("run-1")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, one.Status)

	two, err := store.GetRun("run-2")
	require.NoError(t, err)
	require.Equal(t, StatusRunning, two.Status)
	require.Empty(t, two.Steps)
}

func TestRecorderIgnoresUnknownRunIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rec := NewRecorder(store)

	// Events for runs the recorder never saw must not create records.
	rec.OnStepExecuted(ctx, "orders", "ghost", api.TraceEntry{Step: "load"}, 0)
	rec.OnRunCompleted(ctx, "orders", "ghost", 1)

	_, err := store.GetRun("ghost")
	require.ErrorIs(t, err, ErrRunNotFound)
}
