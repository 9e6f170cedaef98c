// Package weft provides a lightweight, embeddable token-routing workflow
// engine for Go.
//
// Weft is built for backend code that needs small orchestrated flows with
// explicit routing: a caller registers named steps (an action plus an
// optional routing decision), then submits a start step and a payload. The
// engine repeatedly pops a pending token, runs the bound action, lets the
// step's decision enqueue follow-up tokens, and records an execution trace.
// A run ends when the queue drains, or aborts when it hits the step ceiling
// or an unregistered step name.
//
// # Core Concepts
//
// The programming model is intentionally small:
//
//  1. Workflow
//  2. Step
//  3. Decision and Enqueue
//  4. Executor
//  5. Observer and structured step logging
//
// # Workflow
//
// A Workflow owns a registry of uniquely named steps and a default executor.
// Run is synchronous: one call occupies the calling goroutine until the queue
// drains or the run aborts, and returns the final State together with the
// Trace. Independent Run calls may execute concurrently because the registry
// is read-only after registration; each run owns its State, queue, and trace
// exclusively.
//
// # Step
//
// A Step binds a name to an Action producing a value or an error. Action
// failures never abort the run: they are contained into a non-ok Result
// visible to the step's own decision and in the trace. Only two conditions
// abort a run: a token naming an unregistered step, and the step-execution
// ceiling (WithMaxSteps, default 10000).
//
// # Decision and Enqueue
//
// After the action, the step's decision inspects the Result and schedules
// follow-up work through the Enqueue: Tail appends in FIFO order, Head
// inserts in front of everything queued, which is how priority routing and
// "retry this step before moving on" are expressed. Omitting the payload
// forwards the producing step's result value. The DecideTo / DecideIf /
// DecideIfElse builders cover unconditional forwarding and predicate
// branching.
//
// # Executor
//
// An Executor is the pluggable invocation strategy for actions. Resolution
// per invocation is step-level, then run-level (WithExecutor), then the
// workflow default (a direct in-process call). Custom executors can layer
// timing or instrumentation without changing the run-loop contract.
//
// # Observability
//
// Two complementary hooks exist. An Observer (WithObserver) receives run and
// step lifecycle callbacks; NewLoggingObserver emits them via log/slog and
// BasicMetrics aggregates counters. A step Logger (WithLogger, WithLogSink)
// writes one fixed-layout result line per executed step to any io.Writer,
// and hands LogStep actions and decisions a helper for ad-hoc event lines.
// The history package builds on Observer to persist run outcomes in memory
// or SQLite.
//
// # Example
//
//	wf := weft.New("greeter").
//	    Step("hello", func(ctx context.Context, st weft.State, payload any) (any, error) {
//	        return fmt.Sprintf("hello, %v", payload), nil
//	    }, weft.WithDecision(weft.DecideTo("shout", weft.Tail))).
//	    Step("shout", func(ctx context.Context, st weft.State, payload any) (any, error) {
//	        return strings.ToUpper(payload.(string)), nil
//	    }).
//	    MustBuild()
//
//	st, trace, err := wf.Run(ctx, "hello", "weft")
//
// For complete programs, see the /examples directory.
package weft
