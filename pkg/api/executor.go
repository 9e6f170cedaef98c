package api

import "context"

// Executor is the pluggable invocation strategy for a step's action. The
// engine resolves the executor per invocation (step-level wins over run-level
// wins over workflow default) and catches any failure at the call boundary,
// so implementations must let action errors propagate unchanged.
//
// The log argument is the per-step helper for Log* steps; it is never nil.
// Wrapping executors may add concerns (timing, instrumentation) as long as
// the contract holds: same inputs, same outputs, failures still surface.
type Executor interface {
	Execute(ctx context.Context, step Step, st State, payload any, log StepLogger) (any, error)
}

// InProcessExecutor performs a direct synchronous call of the step's action.
// It is the workflow default.
type InProcessExecutor struct{}

var _ Executor = InProcessExecutor{}

func (InProcessExecutor) Execute(ctx context.Context, step Step, st State, payload any, log StepLogger) (any, error) {
	if step.LogAction != nil {
		return step.LogAction(ctx, st, payload, log)
	}
	return step.Action(ctx, st, payload)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, step Step, st State, payload any, log StepLogger) (any, error)

func (f ExecutorFunc) Execute(ctx context.Context, step Step, st State, payload any, log StepLogger) (any, error) {
	return f(ctx, step, st, payload, log)
}
