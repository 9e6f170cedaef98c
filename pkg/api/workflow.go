package api

import (
	"context"
	"io"
)

// DefaultMaxSteps is the step-execution ceiling applied to a run when no
// WithMaxSteps option is given. It is a guard against routing loops, not a
// wall-clock timeout.
const DefaultMaxSteps = 10000

// State is the mutable key/value store shared by every step in a single run.
// It is seeded from the caller's map (shallow copy) and returned when the run
// finishes. After each step execution the engine writes "result.<step-name>"
// with the step's result value, or nil when the step failed.
//
// A State belongs to exactly one run; concurrent runs never share one.
type State map[string]any

// Token is a pending unit of work: the name of the step to execute next and
// the payload it will receive. Tokens are created by Run's initial seed or by
// an Enqueue, and discarded once dequeued.
type Token struct {
	Step    string
	Payload any
}

// Result is the outcome of one action invocation. OK is false iff the action
// returned an error (or panicked); in that case Value is nil and Err carries
// the failure.
type Result struct {
	OK    bool
	Value any
	Err   error
}

// Action is the work a step performs. It receives the run's State and the
// token's payload, and produces a value or fails.
type Action func(ctx context.Context, st State, payload any) (any, error)

// LogAction is an Action that additionally receives the per-step logging
// helper. Declaring a step with LogAction instead of Action is the explicit,
// registration-time capability flag for helper injection; the helper is never
// nil (a no-op implementation is passed when no logger is configured).
type LogAction func(ctx context.Context, st State, payload any, log StepLogger) (any, error)

// Decision runs after a step's action and may schedule follow-up tokens via
// the Enqueue. It sees the action's Result whether or not the action
// succeeded.
type Decision func(ctx context.Context, st State, res Result, enq Enqueue)

// LogDecision is a Decision that additionally receives the per-step logging
// helper. See LogAction.
type LogDecision func(ctx context.Context, st State, res Result, enq Enqueue, log StepLogger)

// Step is a named unit of registration. Exactly one of Action/LogAction must
// be set, and at most one of Decision/LogDecision. Executor, when non-nil,
// overrides both the run-level and workflow-default executors for this step.
//
// Steps are immutable once registered.
type Step struct {
	Name        string
	Action      Action
	LogAction   LogAction
	Decision    Decision
	LogDecision LogDecision
	Executor    Executor
}

// Enqueue is the one-shot scheduling API handed to a decision. It is bound to
// the live queue of the current run and to the just-produced result value.
//
// Payload is variadic to distinguish "omitted" from "explicitly nil": with no
// payload argument the producing step's result value is used; an explicit
// argument (including nil) is forwarded literally. Passing more than one
// payload panics.
//
// Head pushes run before anything currently queued; successive Head calls
// within one decision are LIFO (the last pushed token runs first). Tail
// pushes are FIFO. Each call takes effect against the shared queue
// immediately.
type Enqueue interface {
	Head(step string, payload ...any)
	Tail(step string, payload ...any)
}

// TraceEntry records one completed step execution. Error is the string form
// of the action's failure, empty when the step succeeded. QueueLenAfter is
// the queue length after the step's decision had its chance to mutate it.
type TraceEntry struct {
	Step          string
	OK            bool
	PayloadIn     any
	Value         any
	Error         string
	QueueLenAfter int
}

// Trace is the ordered execution log of one run: one entry per executed step,
// in execution order. Runs aborted by an unknown step or the step ceiling do
// not get a trailing entry for the failing attempt.
type Trace []TraceEntry

// Workflow owns a step registry and a default executor, and drives runs.
//
// The registry is read-only after registration, so independent Run calls may
// safely execute concurrently; each run owns its State, queue and Trace
// exclusively.
type Workflow interface {
	// Name returns the workflow's name.
	Name() string

	// Add registers one or more steps. Registering a name twice fails with
	// a DuplicateStepError before any run can observe the step.
	Add(steps ...Step) error

	// Run executes the workflow from the named start step until the queue
	// drains, returning the final State and the Trace. Action failures are
	// contained into Results and never abort the run; only an unknown step
	// name (UnknownStepError) or the step ceiling (StepLimitError) do, in
	// which case State and Trace are nil.
	Run(ctx context.Context, start string, payload any, opts ...RunOption) (State, Trace, error)
}

// RunConfig collects the per-run settings. Zero value is not ready for use;
// construct via NewRunConfig so defaults apply.
type RunConfig struct {
	Seed         State
	MaxSteps     int
	CaptureTrace bool
	Executor     Executor
	Logger       *Logger
	Observer     Observer
}

// RunOption customizes a single Run call.
type RunOption func(*RunConfig)

// NewRunConfig applies opts over the defaults: MaxSteps=DefaultMaxSteps,
// trace capture on, no seed state, no logger, NoopObserver.
func NewRunConfig(opts ...RunOption) RunConfig {
	cfg := RunConfig{
		MaxSteps:     DefaultMaxSteps,
		CaptureTrace: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Observer == nil {
		cfg.Observer = NoopObserver{}
	}
	return cfg
}

// WithState seeds the run's State. The map is shallow-copied at run start, so
// the caller's map is not mutated.
func WithState(seed State) RunOption {
	return func(cfg *RunConfig) { cfg.Seed = seed }
}

// WithMaxSteps overrides the step-execution ceiling. n <= 0 keeps the
// default.
func WithMaxSteps(n int) RunOption {
	return func(cfg *RunConfig) {
		if n > 0 {
			cfg.MaxSteps = n
		}
	}
}

// WithoutTrace disables trace capture; Run returns an empty Trace. Observers
// still see every executed step.
func WithoutTrace() RunOption {
	return func(cfg *RunConfig) { cfg.CaptureTrace = false }
}

// WithExecutor overrides the workflow's default executor for this run.
// A step's own executor still wins.
func WithExecutor(ex Executor) RunOption {
	return func(cfg *RunConfig) { cfg.Executor = ex }
}

// WithLogger attaches a structured step logger to the run: one result line is
// written per executed step, and Log* steps receive a live helper.
func WithLogger(l *Logger) RunOption {
	return func(cfg *RunConfig) { cfg.Logger = l }
}

// WithLogSink is shorthand for WithLogger(NewLogger(w)).
func WithLogSink(w io.Writer) RunOption {
	return func(cfg *RunConfig) { cfg.Logger = NewLogger(w) }
}

// WithObserver attaches a lifecycle observer to the run. Combine several with
// NewCompositeObserver.
func WithObserver(obs Observer) RunOption {
	return func(cfg *RunConfig) { cfg.Observer = obs }
}
