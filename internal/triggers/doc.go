// Package triggers discovers audio triggers in a bank's audio tree and merges
// them with the trigger list persisted in the bank manifest.
//
// Discovery maps every supported audio file to a {name, path} pair where the
// path is "./"-prefixed and forward-slash separated. Merging keeps the names a
// user already assigned, prunes triggers whose files disappeared, and gives new
// files a unique name through a fixed fallback chain: bare file stem, all
// parent directories joined with dots, the nearest parent directories widened
// outward one at a time, and finally a numeric suffix. Output is always sorted
// by path so rebuilding an unchanged bank produces the same list.
package triggers
