// Package archive assembles the distributable zip file of a bank.
//
// Layout inside the archive:
//
//	bank.toml     the rewritten manifest
//	README.md     copied from the bank or synthesized
//	LICENSE       copied from the bank or synthesized (MIT)
//	audio/        explicit directory entry, then every file of the audio tree
//
// Entries are written in a fixed order with a fixed timestamp and file mode,
// so an unchanged bank produces a byte-identical archive.
package archive
