package metrics

import (
	"testing"
	"time"
)

// NoopRecorder must satisfy Recorder and accept any input.
func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveFetchDuration("https", time.Second, ResultSuccess)
	r.IncFetchResult(ResultFailed)
	r.IncFetchRetry("https")
	r.SetResolveConcurrency(8)
	r.ObserveResolveDuration(time.Millisecond)
	r.IncPassOutcome(PassSuperseded)
}
