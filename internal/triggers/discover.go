package triggers

import (
	"path/filepath"
	"strings"

	"devaforge/internal/fsutil"
)

// Discover walks audioDir and returns one raw trigger per supported audio
// file, sorted by path. Names are file stems and may collide; Merge resolves
// collisions.
func Discover(audioDir string) ([]Trigger, error) {
	files, err := fsutil.WalkFiles(audioDir)
	if err != nil {
		return nil, err
	}

	out := make([]Trigger, 0, len(files))
	for _, file := range files {
		if !IsAudio(file) {
			continue
		}
		rel, ok := fsutil.RelSlash(audioDir, file)
		if !ok {
			rel = filepath.Base(file)
		}
		out = append(out, Trigger{
			Name: stem(file),
			Path: "./" + rel,
		})
	}

	SortByPath(out)
	return out, nil
}

func stem(file string) string {
	base := filepath.Base(file)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
