package triggers

import (
	"path/filepath"
	"sort"
	"strings"
)

// Trigger is a named reference to one audio file of a bank.
type Trigger struct {
	Name string `toml:"name" json:"name"`
	Path string `toml:"path" json:"path"`
}

var audioExtensions = map[string]struct{}{
	"wav":  {},
	"mp3":  {},
	"ogg":  {},
	"aif":  {},
	"aiff": {},
	"flac": {},
}

// IsAudio reports whether the file name carries a supported audio extension.
// Matching is case-insensitive.
func IsAudio(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return false
	}
	_, ok := audioExtensions[strings.ToLower(ext)]
	return ok
}

// SortByPath orders triggers by path in byte order.
func SortByPath(list []Trigger) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Path < list[j].Path })
}

// segments splits a "./"-prefixed trigger path into parent directories and the
// file name.
func segments(path string) (dirs []string, file string) {
	rel := strings.TrimPrefix(path, "./")
	parts := strings.Split(rel, "/")
	return parts[:len(parts)-1], parts[len(parts)-1]
}
