// Package metrics provides observability hooks for compile runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so one-shot compiles carry zero metrics overhead. Watch mode
// swaps in the Prometheus implementation when an endpoint is configured.
package metrics

import "time"

// Outcome labels for the build outcome counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Recorder defines observability hooks for compile and stage metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string)
	SetPagesCompiled(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) SetPagesCompiled(int)                       {}
