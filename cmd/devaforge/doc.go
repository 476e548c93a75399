// Package main hosts the devaforge CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, then
// hands bank references to internal/bank for building, scaffolding, listing
// and version bumps. Human output goes to stdout as status lines and tables;
// --json switches the same commands to machine-readable output. Logs always go
// to stderr.
//
// Keep this package thin: new behavior belongs in the internal packages first
// and is surfaced here as a command or flag.
package main
