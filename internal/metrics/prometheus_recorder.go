package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "mdinline"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fetchDuration      *prom.HistogramVec
	fetchResults       *prom.CounterVec
	fetchRetries       *prom.CounterVec
	resolveConcurrency prom.Gauge
	resolveDuration    prom.Histogram
	passOutcomes       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "image_fetch_duration_seconds",
			Help:      "Duration of individual image fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"scheme", "result"}),
		fetchResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "image_fetch_results_total",
			Help:      "Image fetch results by outcome",
		}, []string{"result"}),
		fetchRetries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "image_fetch_retries_total",
			Help:      "Retried image fetches after transient failures",
		}, []string{"scheme"}),
		resolveConcurrency: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "resolve_concurrency",
			Help:      "Fetch concurrency used by the last resolution pass",
		}),
		resolveDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Duration of whole resolution passes",
			Buckets:   prom.DefBuckets,
		}),
		passOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_passes_total",
			Help:      "Resolution passes by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.fetchDuration, pr.fetchResults, pr.fetchRetries,
		pr.resolveConcurrency, pr.resolveDuration, pr.passOutcomes)
	return pr
}

func (p *PrometheusRecorder) ObserveFetchDuration(scheme string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.fetchDuration.WithLabelValues(scheme, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFetchResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.fetchResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncFetchRetry(scheme string) {
	if p == nil {
		return
	}
	p.fetchRetries.WithLabelValues(scheme).Inc()
}

func (p *PrometheusRecorder) SetResolveConcurrency(n int) {
	if p == nil {
		return
	}
	p.resolveConcurrency.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveResolveDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.resolveDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPassOutcome(outcome PassOutcome) {
	if p == nil {
		return
	}
	p.passOutcomes.WithLabelValues(string(outcome)).Inc()
}
