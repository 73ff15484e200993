package metrics

import "time"

// BuildOutcome labels the terminal state of a build pass.
type BuildOutcome string

const (
	OutcomeSuccess BuildOutcome = "success"
	OutcomeFailure BuildOutcome = "failure"
)

// Recorder defines all metrics operations emitted by the build pipeline.
type Recorder interface {
	// RecordBuild records one completed build pass.
	RecordBuild(outcome BuildOutcome, duration time.Duration)
	// RecordItems records how many content items were rendered vs skipped in a pass.
	RecordItems(rendered, skipped int)
	// RecordCacheDecision records whether incremental caching was in effect for a pass.
	RecordCacheDecision(enabled bool)
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

func (NoopRecorder) RecordBuild(BuildOutcome, time.Duration) {}
func (NoopRecorder) RecordItems(int, int)                    {}
func (NoopRecorder) RecordCacheDecision(bool)                {}
