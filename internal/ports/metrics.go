package ports

import "time"

// MetricsCollector records planner instrumentation.
type MetricsCollector interface {
	RecordPlanSubmitted()
	RecordPlanCompleted(status string, duration time.Duration)
	RecordPhase(phase string, duration time.Duration)
	RecordWorkerCall(worker, status string, duration time.Duration)
	RecordWorkerTimeout(worker string)
	SetActivePlans(count int)
}

// NopMetrics is a MetricsCollector that discards everything. Used in
// tests and when metrics are disabled.
type NopMetrics struct{}

func (NopMetrics) RecordPlanSubmitted()                            {}
func (NopMetrics) RecordPlanCompleted(string, time.Duration)       {}
func (NopMetrics) RecordPhase(string, time.Duration)               {}
func (NopMetrics) RecordWorkerCall(string, string, time.Duration)  {}
func (NopMetrics) RecordWorkerTimeout(string)                      {}
func (NopMetrics) SetActivePlans(int)                              {}
