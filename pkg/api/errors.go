package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStep matches any UnknownStepError via errors.Is.
	ErrUnknownStep = errors.New("unknown step")

	// ErrStepLimit matches any StepLimitError via errors.Is.
	ErrStepLimit = errors.New("step limit exceeded")

	// ErrDuplicateStep matches any DuplicateStepError via errors.Is.
	ErrDuplicateStep = errors.New("duplicate step")
)

// UnknownStepError aborts a run when a token names a step that was never
// registered, whether the name came from the initial Run call or from a
// decision's enqueue.
type UnknownStepError struct {
	Step string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step: %s", e.Step)
}

func (e *UnknownStepError) Is(target error) bool {
	return target == ErrUnknownStep
}

// StepLimitError aborts a run when the executed-step counter reaches the
// configured ceiling while the queue is still non-empty. It usually signals
// a routing loop.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("exceeded %d step executions; possible loop", e.Limit)
}

func (e *StepLimitError) Is(target error) bool {
	return target == ErrStepLimit
}

// DuplicateStepError is returned by Workflow.Add when a step name is already
// registered. It fails at registration time, before any run.
type DuplicateStepError struct {
	Step string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("duplicate step: %s", e.Step)
}

func (e *DuplicateStepError) Is(target error) bool {
	return target == ErrDuplicateStep
}
