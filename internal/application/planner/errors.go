package planner

import "fmt"

// Failure kinds for a degraded worker call.
const (
	FailureTimeout = "timeout"
	FailureError   = "error"
)

// WorkerFailure records a worker call that timed out or errored during
// the gathering phase. It degrades the plan locally; the pipeline
// continues without that worker's report.
type WorkerFailure struct {
	Worker string
	Kind   string
	Err    error
}

func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("worker %s %s: %v", e.Worker, e.Kind, e.Err)
}

func (e *WorkerFailure) Unwrap() error { return e.Err }

// PipelineError is a fatal failure in one of the sequential phases. It
// aborts the plan.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline phase %s: %v", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

func pipelineErrorf(phase, format string, args ...any) *PipelineError {
	return &PipelineError{Phase: phase, Err: fmt.Errorf(format, args...)}
}
