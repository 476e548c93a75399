// Package manifest reads and surgically rewrites bank.toml files.
//
// Parsing goes through go-toml/v2 into Document. Writing never re-serializes
// the whole document: manifests are meant to be hand-edited, so the trigger
// section and the bank version are replaced with line-oriented edits that
// leave comments, key order, and unrelated sections untouched.
package manifest
