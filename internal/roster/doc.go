// Package roster ingests uploaded vendor roster CSVs: headers are normalized,
// required columns enforced, external identifiers derived from country and
// grid values, the table projected down to the three canonical columns, and
// phone numbers validated row by row.
//
// The pipeline is pure with respect to its input. Schema problems abort before
// any output is produced; per-row phone failures are collected as issues and
// never drop the row.
package roster
