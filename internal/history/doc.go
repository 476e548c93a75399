// Package history persists a ledger of bank builds in SQLite.
//
// Each build, successful or not, becomes one row keyed by its build ID. The
// ledger is informational: the packaging pipeline never reads it back to decide
// anything, so losing the database only loses the report.
package history
