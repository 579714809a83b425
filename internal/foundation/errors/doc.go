// Package errors provides the classified error type used across mdinline.
//
// Errors carry a category (what failed), a severity (how much it matters) and
// a retry strategy (whether trying again can help), plus structured context
// for logging. Image resolution builds these for every failed fetch and logs
// them; the CLI maps them to exit codes.
//
//	err := errors.ImageError("fetch failed").
//		WithContext("source", ref.Source).
//		WithCause(err).
//		Build()
package errors
