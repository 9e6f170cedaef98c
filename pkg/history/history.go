// Package history records run outcomes. It is an optional collaborator: a
// Recorder observes a workflow's runs and persists one RunRecord per run into
// a Store. Records describe what happened; they are not resumable queue
// state.
package history

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// StepRecord summarizes one executed step within a run.
type StepRecord struct {
	Step  string
	OK    bool
	Error string
}

// RunRecord is the stored outcome of one run.
type RunRecord struct {
	ID       string
	Workflow string
	Start    string
	Status   Status
	StepsRun int
	Steps    []StepRecord

	// Error is the abort error for FAILED runs, empty otherwise. Contained
	// action failures appear in Steps, not here.
	Error string

	StartedAt  time.Time
	FinishedAt time.Time
}

// Filter selects runs from a Store. Zero values mean "no filter".
type Filter struct {
	Workflow string
	Status   Status
}

// ErrRunNotFound is returned when a run record is not found.
var ErrRunNotFound = errors.New("run not found")

// Store persists run records.
type Store interface {
	SaveRun(rec *RunRecord) error
	UpdateRun(rec *RunRecord) error
	GetRun(id string) (*RunRecord, error)
	ListRuns(filter Filter) ([]*RunRecord, error)
}
