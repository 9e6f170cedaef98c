package weft

import (
	"github.com/weftlabs/weft/internal/engine"
	"github.com/weftlabs/weft/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Workflow    = api.Workflow
	Step        = api.Step
	Token       = api.Token
	Result      = api.Result
	State       = api.State
	Trace       = api.Trace
	TraceEntry  = api.TraceEntry
	Enqueue     = api.Enqueue
	Action      = api.Action
	LogAction   = api.LogAction
	Decision    = api.Decision
	LogDecision = api.LogDecision
	Predicate   = api.Predicate
	Branch      = api.Branch
	Placement   = api.Placement

	Executor          = api.Executor
	ExecutorFunc      = api.ExecutorFunc
	InProcessExecutor = api.InProcessExecutor

	Logger     = api.Logger
	StepLogger = api.StepLogger
	Field      = api.Field

	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot

	RunOption    = api.RunOption
	LoggerOption = api.LoggerOption

	UnknownStepError   = api.UnknownStepError
	StepLimitError     = api.StepLimitError
	DuplicateStepError = api.DuplicateStepError
)

// Queue placements for decisions and decision builders.
const (
	Head = api.Head
	Tail = api.Tail
)

// DefaultMaxSteps is the default step-execution ceiling per run.
const DefaultMaxSteps = api.DefaultMaxSteps

// Re-export decision builders, logging helpers and run options.

var (
	DecideTo     = api.DecideTo
	DecideIf     = api.DecideIf
	DecideIfElse = api.DecideIfElse
	To           = api.To

	NewLogger = api.NewLogger
	WithClock = api.WithClock
	F         = api.F

	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver

	WithState    = api.WithState
	WithMaxSteps = api.WithMaxSteps
	WithoutTrace = api.WithoutTrace
	WithExecutor = api.WithExecutor
	WithLogger   = api.WithLogger
	WithLogSink  = api.WithLogSink
	WithObserver = api.WithObserver
)

// Error sentinels matchable with errors.Is.
var (
	ErrUnknownStep   = api.ErrUnknownStep
	ErrStepLimit     = api.ErrStepLimit
	ErrDuplicateStep = api.ErrDuplicateStep
)

// WorkflowOption configures a new Workflow.
type WorkflowOption func(*workflowConfig)

type workflowConfig struct {
	executor Executor
}

// WithDefaultExecutor sets the workflow's default executor, used whenever
// neither the step nor the run supplies one.
func WithDefaultExecutor(ex Executor) WorkflowOption {
	return func(cfg *workflowConfig) { cfg.executor = ex }
}

// NewWorkflow creates an empty workflow. Register steps with Add or use the
// fluent Builder via New.
func NewWorkflow(name string, opts ...WorkflowOption) Workflow {
	var cfg workflowConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return engine.New(name, cfg.executor)
}
