// Package logging assembles structured slog loggers and formatting helpers used
// across sleuth.
//
// It owns the console and JSON handlers, fans records out to an optional JSON
// log file, and exposes context-aware helpers so query evaluation can tag every
// line with the run ID of the image being investigated. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same keys.
package logging
