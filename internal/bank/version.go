package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"devaforge/internal/faults"
	"devaforge/internal/manifest"
)

// Bump selects the semver component to increment.
type Bump string

const (
	BumpMajor Bump = "major"
	BumpMinor Bump = "minor"
	BumpPatch Bump = "patch"
)

// ParseBump validates a bump kind.
func ParseBump(value string) (Bump, error) {
	switch b := Bump(strings.ToLower(strings.TrimSpace(value))); b {
	case BumpMajor, BumpMinor, BumpPatch:
		return b, nil
	default:
		return "", faults.Wrap(faults.ErrMalformed, "", "version", fmt.Sprintf("bump %q must be major, minor or patch", value), nil)
	}
}

// NextVersion returns current incremented by kind. Pre-release and build
// suffixes are dropped. An empty current version counts as 0.0.0.
func NextVersion(current string, kind Bump) (string, error) {
	current = strings.TrimSpace(current)
	if current == "" {
		current = "0.0.0"
	}
	v := "v" + strings.TrimPrefix(current, "v")
	if !semver.IsValid(v) {
		return "", fmt.Errorf("version %q is not valid semver", current)
	}
	canonical := semver.Canonical(v)
	core := strings.TrimPrefix(strings.TrimSuffix(canonical, semver.Prerelease(canonical)), "v")
	parts := strings.Split(core, ".")
	nums := make([]int, 3)
	for i := range nums {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return "", fmt.Errorf("version %q: %w", current, err)
		}
		nums[i] = n
	}
	switch kind {
	case BumpMajor:
		nums = []int{nums[0] + 1, 0, 0}
	case BumpMinor:
		nums = []int{nums[0], nums[1] + 1, 0}
	case BumpPatch:
		nums[2]++
	default:
		return "", fmt.Errorf("unknown bump %q", kind)
	}
	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}

// BumpVersion increments the version of the bank named by ref and rewrites
// only the version line of its manifest. It returns the old and new versions.
func BumpVersion(layout Layout, ref string, kind Bump) (string, string, error) {
	dir, err := Resolve(layout, ref)
	if err != nil {
		return "", "", err
	}
	path := filepath.Join(dir, manifest.FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", faults.Wrap(faults.ErrIO, dir, "version", "read "+manifest.FileName, err)
	}
	doc, err := manifest.Parse(data)
	if err != nil {
		return "", "", faults.Wrap(faults.ErrMalformed, dir, "version", "", err)
	}

	next, err := NextVersion(doc.Bank.Version, kind)
	if err != nil {
		return "", "", faults.Wrap(faults.ErrMalformed, dir, "version", "", err)
	}
	text, err := manifest.SetVersion(string(data), next)
	if err != nil {
		return "", "", faults.Wrap(faults.ErrMalformed, dir, "version", "", err)
	}
	if err := manifest.WriteFileAtomic(path, []byte(text)); err != nil {
		return "", "", faults.Wrap(faults.ErrIO, dir, "version", "write "+manifest.FileName, err)
	}
	return doc.Bank.Version, next, nil
}
