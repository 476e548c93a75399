package triggers

import (
	"sort"
	"strconv"
	"strings"
)

// Merge reconciles discovered triggers with the existing manifest list.
//
// A discovered path already present in existing keeps its existing name
// verbatim. New paths receive a name from Disambiguate; existing names,
// including those of pruned entries, count as taken. Existing entries whose
// path was not discovered are dropped. The result is sorted by path.
//
// New names are claimed shallowest path first and then in byte order, so a
// file directly under the audio root owns its bare stem before same-named
// files in subdirectories.
func Merge(existing, discovered []Trigger) []Trigger {
	byPath := make(map[string]string, len(existing))
	names := NewNameSet()
	for _, t := range existing {
		byPath[t.Path] = t.Name
		names.Claim(t.Name)
	}

	candidates := make([]Trigger, len(discovered))
	copy(candidates, discovered)
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := depth(candidates[i].Path), depth(candidates[j].Path)
		if di != dj {
			return di < dj
		}
		return candidates[i].Path < candidates[j].Path
	})

	seen := make(map[string]struct{}, len(candidates))
	out := make([]Trigger, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Path]; dup {
			continue
		}
		seen[c.Path] = struct{}{}

		if name, ok := byPath[c.Path]; ok {
			out = append(out, Trigger{Name: name, Path: c.Path})
			continue
		}
		out = append(out, Trigger{Name: Disambiguate(c.Name, c.Path, names), Path: c.Path})
	}

	SortByPath(out)
	return out
}

// Disambiguate claims and returns the first free name for a trigger with the
// given stem and "./"-relative path. Candidates are tried in this order:
//
//	base
//	<all parent dirs joined by ".">.base
//	<innermost dir>.base, <next>.<innermost>.base, ... widening outward
//	base_2, base_3, ...
//
// An empty base is treated like any other string.
func Disambiguate(base, path string, names *NameSet) string {
	if names.Claim(base) {
		return base
	}

	dirs, _ := segments(path)
	if len(dirs) > 0 {
		joined := strings.Join(dirs, ".") + "." + base
		if names.Claim(joined) {
			return joined
		}
		for i := len(dirs) - 1; i >= 0; i-- {
			candidate := strings.Join(dirs[i:], ".") + "." + base
			if names.Claim(candidate) {
				return candidate
			}
		}
	}

	for n := 2; ; n++ {
		candidate := base + "_" + strconv.Itoa(n)
		if names.Claim(candidate) {
			return candidate
		}
	}
}

func depth(path string) int {
	dirs, _ := segments(path)
	return len(dirs)
}
