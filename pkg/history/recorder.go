package history

import (
	"context"
	"sync"
	"time"

	"github.com/weftlabs/weft/pkg/api"
)

// Recorder is an api.Observer that persists one RunRecord per observed run.
// Attach it to a run with api.WithObserver (combine with other observers via
// api.NewCompositeObserver):
//
//	store := history.NewMemoryStore()
//	wf.Run(ctx, "load", payload, weft.WithObserver(history.NewRecorder(store)))
//
// Store errors are deliberately swallowed: recording is an observability
// concern and must never alter the run's outcome.
type Recorder struct {
	store Store
	now   func() time.Time

	mu     sync.Mutex
	active map[string]*RunRecord
}

// RecorderOption customizes a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderClock replaces the Recorder's time source. Defaults to
// time.Now.
func WithRecorderClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder creates a Recorder over the given store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:  store,
		now:    time.Now,
		active: make(map[string]*RunRecord),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ api.Observer = (*Recorder)(nil)

func (r *Recorder) OnRunStart(ctx context.Context, workflow, runID, start string) {
	rec := &RunRecord{
		ID:        runID,
		Workflow:  workflow,
		Start:     start,
		Status:    StatusRunning,
		StartedAt: r.now().UTC(),
	}

	r.mu.Lock()
	r.active[runID] = rec
	r.mu.Unlock()

	_ = r.store.SaveRun(rec)
}

func (r *Recorder) OnStepExecuted(ctx context.Context, workflow, runID string, entry api.TraceEntry, d time.Duration) {
	r.mu.Lock()
	rec, ok := r.active[runID]
	if ok {
		rec.Steps = append(rec.Steps, StepRecord{
			Step:  entry.Step,
			OK:    entry.OK,
			Error: entry.Error,
		})
		rec.StepsRun = len(rec.Steps)
	}
	r.mu.Unlock()

	if ok {
		_ = r.store.UpdateRun(rec)
	}
}

func (r *Recorder) OnRunCompleted(ctx context.Context, workflow, runID string, stepsRun int) {
	r.finish(runID, StatusCompleted, "")
}

func (r *Recorder) OnRunFailed(ctx context.Context, workflow, runID string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.finish(runID, StatusFailed, msg)
}

func (r *Recorder) finish(runID string, status Status, errMsg string) {
	r.mu.Lock()
	rec, ok := r.active[runID]
	if ok {
		delete(r.active, runID)
		rec.Status = status
		rec.Error = errMsg
		rec.FinishedAt = r.now().UTC()
	}
	r.mu.Unlock()

	if ok {
		_ = r.store.UpdateRun(rec)
	}
}
