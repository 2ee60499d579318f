// Package logging builds slog loggers with the console and JSON handlers used
// across outreach, plus helpers for carrying session and stage identifiers
// from context into log records.
package logging
