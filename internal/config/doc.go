// Package config loads, normalizes, and validates devaforge configuration data.
//
// It supplies repository defaults (generated/banks as the bank source tree,
// output/bank as the archive destination), expands user paths including tilde
// shortcuts, reads TOML files, and honours environment fallbacks such as
// DEVAFORGE_ROOT. The Config type centralizes every knob the CLI and the
// packaging pipeline need so the banks root, output root, and history ledger
// location are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, a canonical log format, and clear validation errors.
package config
