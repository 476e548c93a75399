package main

import "path/filepath"

// shortBankName returns the "<author>.<name>" directory name of a bank path.
func shortBankName(dir string) string {
	return filepath.Base(dir)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
