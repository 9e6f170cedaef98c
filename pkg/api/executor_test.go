package api

import (
	"context"
	"errors"
	"testing"
)

func TestInProcessExecutorCallsAction(t *testing.T) {
	step := Step{
		Name: "double",
		Action: func(ctx context.Context, st State, payload any) (any, error) {
			return payload.(int) * 2, nil
		},
	}

	v, err := InProcessExecutor{}.Execute(context.Background(), step, State{}, 21, NoopStepLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestInProcessExecutorPrefersLogAction(t *testing.T) {
	step := Step{
		Name: "logged",
		LogAction: func(ctx context.Context, st State, payload any, log StepLogger) (any, error) {
			if log == nil {
				t.Fatalf("helper must not be nil")
			}
			return "via-log-action", nil
		},
	}

	v, err := InProcessExecutor{}.Execute(context.Background(), step, State{}, nil, NoopStepLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "via-log-action" {
		t.Fatalf("expected LogAction result, got %v", v)
	}
}

func TestInProcessExecutorPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	step := Step{
		Name: "fails",
		Action: func(ctx context.Context, st State, payload any) (any, error) {
			return nil, boom
		},
	}

	_, err := InProcessExecutor{}.Execute(context.Background(), step, State{}, nil, NoopStepLogger{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected action error to propagate, got %v", err)
	}
}

func TestExecutorFuncAdapter(t *testing.T) {
	var seen string
	ex := ExecutorFunc(func(ctx context.Context, step Step, st State, payload any, log StepLogger) (any, error) {
		seen = step.Name
		return payload, nil
	})

	v, err := ex.Execute(context.Background(), Step{Name: "wrapped"}, State{}, "p", NoopStepLogger{})
	if err != nil || v != "p" || seen != "wrapped" {
		t.Fatalf("adapter did not pass through: v=%v err=%v seen=%q", v, err, seen)
	}
}
