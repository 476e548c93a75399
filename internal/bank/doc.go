// Package bank drives the packaging pipeline for bank directories.
//
// A Builder runs one bank through discovery, merge, manifest rewrite and
// archive assembly, and records the outcome in the build ledger. BuildAll runs
// every bank under the banks root in path order and keeps going past failures;
// the aggregated *BatchError lists each failed bank with its cause.
//
// The package also hosts the small manifest-level operations used by the CLI:
// reference resolution, scaffolding, listing and version bumps.
package bank
