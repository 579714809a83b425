package metrics

import "time"

// ResultLabel enumerates fetch outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// PassOutcome enumerates how a resolution pass ended.
type PassOutcome string

const (
	PassPublished  PassOutcome = "published"
	PassSuperseded PassOutcome = "superseded"
	PassCanceled   PassOutcome = "canceled"
)

// Recorder defines observability hooks for image resolution.
type Recorder interface {
	ObserveFetchDuration(scheme string, d time.Duration, result ResultLabel)
	IncFetchResult(result ResultLabel)
	IncFetchRetry(scheme string)
	SetResolveConcurrency(n int)
	ObserveResolveDuration(d time.Duration)
	IncPassOutcome(outcome PassOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFetchDuration(string, time.Duration, ResultLabel) {}
func (NoopRecorder) IncFetchResult(ResultLabel)                             {}
func (NoopRecorder) IncFetchRetry(string)                                   {}
func (NoopRecorder) SetResolveConcurrency(int)                              {}
func (NoopRecorder) ObserveResolveDuration(time.Duration)                   {}
func (NoopRecorder) IncPassOutcome(PassOutcome)                             {}
