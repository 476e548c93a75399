package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

var versionLine = regexp.MustCompile(`^(\s*version\s*=\s*)("(?:[^"\\]|\\.)*"|'[^']*')(.*)$`)

// SetVersion rewrites the version key of the [bank] section in text, keeping
// indentation and any trailing comment. A missing key is appended after the
// last non-blank line of the section.
func SetVersion(text, version string) (string, error) {
	lines := splitLines(text)
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == bankHeader {
			start = i
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("%w: no [bank] section", ErrInvalid)
	}
	end := bankSectionEnd(lines)

	for i := start + 1; i < end; i++ {
		m := versionLine.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		lines[i] = m[1] + quote(version) + m[3]
		return strings.Join(lines, "\n") + "\n", nil
	}

	insert := end
	for insert > start+1 && strings.TrimSpace(lines[insert-1]) == "" {
		insert--
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insert]...)
	out = append(out, "version = "+quote(version))
	out = append(out, lines[insert:]...)
	return strings.Join(out, "\n") + "\n", nil
}
