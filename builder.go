package weft

import (
	"fmt"

	"github.com/weftlabs/weft/pkg/api"
)

// Builder provides a fluent API for defining workflows:
//
//	wf, err := weft.New("orders").
//	    Step("load", loadOrders, weft.WithDecision(routeOrders)).
//	    Step("process", processOrder, weft.WithDecision(weft.DecideTo("finalize", weft.Tail))).
//	    Step("finalize", finalize).
//	    Build()
type Builder struct {
	name  string
	steps []api.Step
}

// New creates a new workflow builder with the given name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Name returns the workflow name.
func (b *Builder) Name() string {
	return b.name
}

// StepOption attaches a decision or an executor to a step under
// construction.
type StepOption func(*api.Step)

// WithDecision sets the step's decision.
func WithDecision(d Decision) StepOption {
	return func(s *api.Step) { s.Decision = d }
}

// WithLogDecision sets a decision that receives the per-step logging helper.
func WithLogDecision(d LogDecision) StepOption {
	return func(s *api.Step) { s.LogDecision = d }
}

// WithStepExecutor sets a per-step executor override.
func WithStepExecutor(ex Executor) StepOption {
	return func(s *api.Step) { s.Executor = ex }
}

// Step appends a step with the given action.
func (b *Builder) Step(name string, action Action, opts ...StepOption) *Builder {
	if action == nil {
		panic(fmt.Sprintf("weft: step %q has nil action", name))
	}
	return b.add(api.Step{Name: name, Action: action}, opts)
}

// LogStep appends a step whose action receives the per-step logging helper.
func (b *Builder) LogStep(name string, action LogAction, opts ...StepOption) *Builder {
	if action == nil {
		panic(fmt.Sprintf("weft: step %q has nil action", name))
	}
	return b.add(api.Step{Name: name, LogAction: action}, opts)
}

func (b *Builder) add(s api.Step, opts []StepOption) *Builder {
	if s.Name == "" {
		panic("weft: step name must not be empty")
	}
	for _, opt := range opts {
		opt(&s)
	}
	b.steps = append(b.steps, s)
	return b
}

// Build creates the workflow and registers all collected steps. Registration
// errors (duplicate names, conflicting action variants) surface here.
func (b *Builder) Build(opts ...WorkflowOption) (Workflow, error) {
	wf := NewWorkflow(b.name, opts...)
	if err := wf.Add(b.steps...); err != nil {
		return nil, err
	}
	return wf, nil
}

// MustBuild is like Build but panics on error. Useful for initialization in
// main().
func (b *Builder) MustBuild(opts ...WorkflowOption) Workflow {
	wf, err := b.Build(opts...)
	if err != nil {
		panic(err)
	}
	return wf
}
