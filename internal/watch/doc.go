// Package watch triggers work when a file changes or a timer fires.
//
// FileWatcher watches the directory holding a single file and calls back,
// debounced, when that file is written, created or renamed into place.
// Scheduler runs periodic jobs on top of gocron.
package watch
