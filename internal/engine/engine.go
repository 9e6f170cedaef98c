// Package engine holds the synchronous run loop behind the public Workflow
// interface. External callers construct workflows through the root package.
package engine

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/weftlabs/weft/pkg/api"
)

type workflow struct {
	name        string
	steps       map[string]api.Step
	defaultExec api.Executor
}

// New creates a workflow with the given name and default executor. A nil
// executor falls back to api.InProcessExecutor.
func New(name string, defaultExec api.Executor) api.Workflow {
	if name == "" {
		name = "workflow"
	}
	if defaultExec == nil {
		defaultExec = api.InProcessExecutor{}
	}
	return &workflow{
		name:        name,
		steps:       make(map[string]api.Step),
		defaultExec: defaultExec,
	}
}

func (w *workflow) Name() string {
	return w.name
}

func (w *workflow) Add(steps ...api.Step) error {
	for _, s := range steps {
		if err := validateStep(s); err != nil {
			return err
		}
		if _, exists := w.steps[s.Name]; exists {
			return &api.DuplicateStepError{Step: s.Name}
		}
		w.steps[s.Name] = s
	}
	return nil
}

func validateStep(s api.Step) error {
	if s.Name == "" {
		return fmt.Errorf("step name must not be empty")
	}
	if s.Action == nil && s.LogAction == nil {
		return fmt.Errorf("step %q has no action", s.Name)
	}
	if s.Action != nil && s.LogAction != nil {
		return fmt.Errorf("step %q declares both Action and LogAction", s.Name)
	}
	if s.Decision != nil && s.LogDecision != nil {
		return fmt.Errorf("step %q declares both Decision and LogDecision", s.Name)
	}
	return nil
}

func (w *workflow) Run(ctx context.Context, start string, payload any, opts ...api.RunOption) (api.State, api.Trace, error) {
	cfg := api.NewRunConfig(opts...)
	runID := uuid.NewString()
	obs := cfg.Observer

	obs.OnRunStart(ctx, w.name, runID, start)

	if _, ok := w.steps[start]; !ok {
		err := &api.UnknownStepError{Step: start}
		obs.OnRunFailed(ctx, w.name, runID, err)
		return nil, nil, err
	}

	st := make(api.State, len(cfg.Seed))
	maps.Copy(st, cfg.Seed)

	queue := &tokenQueue{}
	queue.pushTail(api.Token{Step: start, Payload: payload})

	var trace api.Trace
	stepsRun := 0

	for queue.len() > 0 {
		if stepsRun >= cfg.MaxSteps {
			err := &api.StepLimitError{Limit: cfg.MaxSteps}
			obs.OnRunFailed(ctx, w.name, runID, err)
			return nil, nil, err
		}

		token, _ := queue.pop()
		step, ok := w.steps[token.Step]
		if !ok {
			err := &api.UnknownStepError{Step: token.Step}
			obs.OnRunFailed(ctx, w.name, runID, err)
			return nil, nil, err
		}

		helper := w.resolveHelper(step, cfg)
		ex := w.resolveExecutor(step, cfg)

		started := time.Now()
		res := executeStep(ctx, ex, step, st, token.Payload, helper)
		elapsed := time.Since(started)

		if cfg.Logger != nil {
			cfg.Logger.Log(step.Name, token.Payload, res)
		}

		enq := enqueue{q: queue, def: res.Value}
		switch {
		case step.LogDecision != nil:
			step.LogDecision(ctx, st, res, enq, helper)
		case step.Decision != nil:
			step.Decision(ctx, st, res, enq)
		}

		if res.OK {
			st["result."+step.Name] = res.Value
		} else {
			st["result."+step.Name] = nil
		}

		entry := api.TraceEntry{
			Step:          step.Name,
			OK:            res.OK,
			PayloadIn:     token.Payload,
			Value:         res.Value,
			QueueLenAfter: queue.len(),
		}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		if cfg.CaptureTrace {
			trace = append(trace, entry)
		}
		obs.OnStepExecuted(ctx, w.name, runID, entry, elapsed)

		stepsRun++
	}

	obs.OnRunCompleted(ctx, w.name, runID, stepsRun)
	return st, trace, nil
}

// resolveExecutor picks the executor for one invocation: step-level wins over
// the run-level override, which wins over the workflow default.
func (w *workflow) resolveExecutor(step api.Step, cfg api.RunConfig) api.Executor {
	if step.Executor != nil {
		return step.Executor
	}
	if cfg.Executor != nil {
		return cfg.Executor
	}
	return w.defaultExec
}

func (w *workflow) resolveHelper(step api.Step, cfg api.RunConfig) api.StepLogger {
	if cfg.Logger != nil {
		return cfg.Logger.ForStep(step.Name)
	}
	return api.NoopStepLogger{}
}

// executeStep runs the action through the resolved executor and contains any
// failure, including panics, into a non-ok Result. Nothing raised by an
// action escapes the run loop.
func executeStep(ctx context.Context, ex api.Executor, step api.Step, st api.State, payload any, log api.StepLogger) (res api.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = api.Result{OK: false, Err: fmt.Errorf("step %q panicked: %v", step.Name, r)}
		}
	}()

	value, err := ex.Execute(ctx, step, st, payload, log)
	if err != nil {
		return api.Result{OK: false, Err: err}
	}
	return api.Result{OK: true, Value: value}
}
