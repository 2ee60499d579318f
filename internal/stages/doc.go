// Package stages defines the typed records for each workflow stage, the
// minute-precision wire timestamp format they round-trip through persistence
// with, per-stage validation, and the reconciliation rules that rebuild
// editable nested structures from previously saved data.
//
// Records are immutable value types; validation and reconciliation are pure
// functions so the transport layer can call them before persisting anything.
package stages
