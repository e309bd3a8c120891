// Package app wires the analyzer and generator pipelines together.
//
// An Application holds the loaded configuration and the process logger.
// Analyze runs the analyzer as a sequence of traced steps:
//
//	load → merge → summarize/save → plot (×4)
//
// Optional plots whose source column is absent are recorded as skipped
// rather than failing the run. Every produced or skipped artifact is
// returned as an Artifact whose StatusLine is what the command prints.
//
// Run metrics and stage traces are written when the telemetry section of
// the configuration names a metrics or trace file.
//
// # Error Handling
//
// All errors are returned to the caller. The app does not call os.Exit(),
// allowing the command layer to control the exit process.
package app
