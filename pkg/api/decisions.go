package api

import (
	"context"
	"fmt"
)

// Placement selects which end of the work queue a token is pushed to.
type Placement string

const (
	// Head inserts before everything currently queued.
	Head Placement = "head"
	// Tail appends after everything currently queued.
	Tail Placement = "tail"
)

func (p Placement) valid() bool {
	return p == Head || p == Tail
}

// Predicate decides which branch a DecideIf decision takes.
type Predicate func(st State, res Result) bool

// Branch names a routing target for DecideIf / DecideIfElse.
type Branch struct {
	Step  string
	Where Placement
}

// To is shorthand for Branch{Step: step, Where: where}.
func To(step string, where Placement) Branch {
	return Branch{Step: step, Where: where}
}

// DecideTo returns a decision that unconditionally enqueues step at the given
// end. The enqueued payload is the producing step's result value. It panics
// on a Placement other than Head or Tail; misrouting is a programming error
// caught at construction, not at run time.
func DecideTo(step string, where Placement) Decision {
	mustBeValid("DecideTo", where)
	return func(ctx context.Context, st State, res Result, enq Enqueue) {
		dispatch(enq, step, where)
	}
}

// DecideIf returns a decision that enqueues yes.Step when pred holds and does
// nothing otherwise. A false predicate is a valid terminal branch, not an
// error. Panics at construction on an invalid placement.
func DecideIf(pred Predicate, yes Branch) Decision {
	mustBeValid("DecideIf", yes.Where)
	return func(ctx context.Context, st State, res Result, enq Enqueue) {
		if pred(st, res) {
			dispatch(enq, yes.Step, yes.Where)
		}
	}
}

// DecideIfElse returns a decision that enqueues yes.Step when pred holds and
// no.Step otherwise. Panics at construction if either placement is invalid.
func DecideIfElse(pred Predicate, yes, no Branch) Decision {
	mustBeValid("DecideIfElse", yes.Where)
	mustBeValid("DecideIfElse", no.Where)
	return func(ctx context.Context, st State, res Result, enq Enqueue) {
		if pred(st, res) {
			dispatch(enq, yes.Step, yes.Where)
		} else {
			dispatch(enq, no.Step, no.Where)
		}
	}
}

func dispatch(enq Enqueue, step string, where Placement) {
	if where == Head {
		enq.Head(step)
		return
	}
	enq.Tail(step)
}

func mustBeValid(builder string, where Placement) {
	if !where.valid() {
		panic(fmt.Sprintf("weft: %s placement must be Head or Tail, got %q", builder, string(where)))
	}
}
