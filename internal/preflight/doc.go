// Package preflight provides readiness checks for the filesystem paths a
// build depends on.
//
// The CLI "devaforge config validate" command runs RunAll and prints one line
// per check. Builds do not call it; they fail on the first real I/O error
// instead.
package preflight
