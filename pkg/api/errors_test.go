package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorSentinelMatching(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{&UnknownStepError{Step: "missing"}, ErrUnknownStep},
		{&StepLimitError{Limit: 10}, ErrStepLimit},
		{&DuplicateStepError{Step: "dup"}, ErrDuplicateStep},
	}

	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Fatalf("%v should match %v", tc.err, tc.sentinel)
		}
		wrapped := fmt.Errorf("run failed: %w", tc.err)
		if !errors.Is(wrapped, tc.sentinel) {
			t.Fatalf("wrapped %v should match %v", wrapped, tc.sentinel)
		}
	}

	if errors.Is(&UnknownStepError{Step: "x"}, ErrStepLimit) {
		t.Fatalf("sentinels must not cross-match")
	}
}

func TestErrorMessages(t *testing.T) {
	if got := (&UnknownStepError{Step: "charge"}).Error(); got != "unknown step: charge" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := (&StepLimitError{Limit: 3}).Error(); got != "exceeded 3 step executions; possible loop" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := (&DuplicateStepError{Step: "load"}).Error(); got != "duplicate step: load" {
		t.Fatalf("unexpected message: %q", got)
	}
}
