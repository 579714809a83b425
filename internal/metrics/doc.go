// Package metrics provides observability hooks for image resolution.
//
// Components receive a Recorder through their options and default to
// NoopRecorder, so nothing needs a nil check:
//
//	reg := prometheus.NewRegistry()
//	resolver := imageload.NewResolver(fetcher,
//		imageload.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
