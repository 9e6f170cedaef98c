package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the engine for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay the run loop.
type Observer interface {
	// OnRunStart is called once per Run, before the first step executes.
	OnRunStart(ctx context.Context, workflow, runID, start string)

	// OnStepExecuted is called after every executed step, including failed
	// ones, and regardless of trace capture. d is the action's wall time.
	OnStepExecuted(ctx context.Context, workflow, runID string, entry TraceEntry, d time.Duration)

	// OnRunCompleted is called when the queue drains.
	OnRunCompleted(ctx context.Context, workflow, runID string, stepsRun int)

	// OnRunFailed is called when the run aborts with an unknown-step or
	// step-limit error.
	OnRunFailed(ctx context.Context, workflow, runID string, err error)
}

// NoopObserver is an Observer that does nothing. It is the default when no
// observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnRunStart(ctx context.Context, workflow, runID, start string) {}
func (NoopObserver) OnStepExecuted(ctx context.Context, workflow, runID string, entry TraceEntry, d time.Duration) {
}
func (NoopObserver) OnRunCompleted(ctx context.Context, workflow, runID string, stepsRun int) {}
func (NoopObserver) OnRunFailed(ctx context.Context, workflow, runID string, err error)      {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnRunStart(ctx context.Context, workflow, runID, start string) {
	for _, o := range c.observers {
		o.OnRunStart(ctx, workflow, runID, start)
	}
}

func (c *CompositeObserver) OnStepExecuted(ctx context.Context, workflow, runID string, entry TraceEntry, d time.Duration) {
	for _, o := range c.observers {
		o.OnStepExecuted(ctx, workflow, runID, entry, d)
	}
}

func (c *CompositeObserver) OnRunCompleted(ctx context.Context, workflow, runID string, stepsRun int) {
	for _, o := range c.observers {
		o.OnRunCompleted(ctx, workflow, runID, stepsRun)
	}
}

func (c *CompositeObserver) OnRunFailed(ctx context.Context, workflow, runID string, err error) {
	for _, o := range c.observers {
		o.OnRunFailed(ctx, workflow, runID, err)
	}
}

// LoggingObserver writes structured lifecycle logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs run and step lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnRunStart(ctx context.Context, workflow, runID, start string) {
	o.Logger.InfoContext(ctx, "run_start",
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
		slog.String("start", start),
	)
}

func (o *LoggingObserver) OnStepExecuted(ctx context.Context, workflow, runID string, entry TraceEntry, d time.Duration) {
	level := slog.LevelDebug
	if !entry.OK {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "step_executed",
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
		slog.String("step", entry.Step),
		slog.Bool("ok", entry.OK),
		slog.Int("queue_len", entry.QueueLenAfter),
		slog.Duration("duration", d),
		slog.String("error", entry.Error),
	)
}

func (o *LoggingObserver) OnRunCompleted(ctx context.Context, workflow, runID string, stepsRun int) {
	o.Logger.InfoContext(ctx, "run_completed",
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
		slog.Int("steps_run", stepsRun),
	)
}

func (o *LoggingObserver) OnRunFailed(ctx context.Context, workflow, runID string, err error) {
	o.Logger.ErrorContext(ctx, "run_failed",
		slog.String("workflow", workflow),
		slog.String("run_id", runID),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate step durations.
// It implements Observer and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	runsStarted       atomic.Int64
	runsCompleted     atomic.Int64
	runsFailed        atomic.Int64
	stepsExecuted     atomic.Int64
	stepsFailed       atomic.Int64
	totalStepDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	RunsStarted   int64
	RunsCompleted int64
	RunsFailed    int64
	ActiveRuns    int64

	StepsExecuted   int64
	StepsFailed     int64
	AvgStepDuration time.Duration
}

func (m *BasicMetrics) OnRunStart(ctx context.Context, workflow, runID, start string) {
	m.runsStarted.Add(1)
}

func (m *BasicMetrics) OnStepExecuted(ctx context.Context, workflow, runID string, entry TraceEntry, d time.Duration) {
	m.stepsExecuted.Add(1)
	m.totalStepDuration.Add(d.Nanoseconds())
	if !entry.OK {
		m.stepsFailed.Add(1)
	}
}

func (m *BasicMetrics) OnRunCompleted(ctx context.Context, workflow, runID string, stepsRun int) {
	m.runsCompleted.Add(1)
}

func (m *BasicMetrics) OnRunFailed(ctx context.Context, workflow, runID string, err error) {
	m.runsFailed.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.runsStarted.Load()
	completed := m.runsCompleted.Load()
	failed := m.runsFailed.Load()
	steps := m.stepsExecuted.Load()
	totalNs := m.totalStepDuration.Load()

	var avg time.Duration
	if steps > 0 {
		avg = time.Duration(totalNs / steps)
	}

	return BasicMetricsSnapshot{
		RunsStarted:     started,
		RunsCompleted:   completed,
		RunsFailed:      failed,
		ActiveRuns:      started - completed - failed,
		StepsExecuted:   steps,
		StepsFailed:     m.stepsFailed.Load(),
		AvgStepDuration: avg,
	}
}
