// Package faults defines the error kinds shared by the packaging pipeline.
//
// Every failure surfaced by a build is tagged with one of the exported
// sentinel markers (not found, ambiguous reference, malformed input, I/O
// failure) and carries the bank and the pipeline step that failed. Callers
// classify errors with errors.Is against the markers instead of matching
// message text.
package faults
