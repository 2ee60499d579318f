// Package session persists per-session workflow state in SQLite and exposes
// the key/value contract the stage handlers rely on: stage records keyed by
// (session id, stage) with full-replace put semantics and a sticky completion
// flag, plus artifact references keyed by (session id, kind).
//
// The database is the single source of truth for workflow state. Schema
// changes bump the version in schema.go; sessions are cleared to adopt the
// new schema.
package session
