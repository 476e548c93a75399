package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devaforge/internal/triggers"
)

const (
	triggersHeader = "[[triggers]]"
	bankHeader     = "[bank]"
)

// RewriteTriggers replaces every [[triggers]] block of text with list, placed
// directly after the [bank] section. All other lines are kept verbatim apart
// from blank lines around the insertion point: with triggers, exactly one
// blank line separates them from the head and from the tail; without
// triggers, head and tail are joined directly. The result ends with a single
// newline. Applying it twice with the same list yields identical text.
func RewriteTriggers(text string, list []triggers.Trigger) string {
	cleaned := stripTriggerBlocks(splitLines(text))
	at := bankSectionEnd(cleaned)

	head := trimTrailingBlank(cleaned[:at])
	tail := trimLeadingBlank(cleaned[at:])

	out := make([]string, 0, len(head)+len(tail)+len(list)*4+2)
	out = append(out, head...)
	if len(list) > 0 {
		if len(out) > 0 {
			out = append(out, "")
		}
		for i, t := range list {
			if i > 0 {
				out = append(out, "")
			}
			out = append(out,
				triggersHeader,
				"name = "+quote(t.Name),
				"path = "+quote(t.Path),
			)
		}
		if len(tail) > 0 {
			out = append(out, "")
		}
	}
	out = append(out, tail...)
	return strings.Join(out, "\n") + "\n"
}

// WriteTriggers rewrites the trigger section of the manifest at path.
func WriteTriggers(path string, list []triggers.Trigger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", FileName, err)
	}
	return WriteFileAtomic(path, []byte(RewriteTriggers(string(data), list)))
}

// WriteFileAtomic replaces path with data through a temporary file in the
// same directory and a rename, so a crash never leaves a truncated manifest.
// The existing file mode is kept.
func WriteFileAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp manifest: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp manifest: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp manifest: %w", err)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp manifest: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// splitLines splits on "\n", dropping a trailing "\r" from each line and the
// empty element after a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func stripTriggerBlocks(lines []string) []string {
	out := make([]string, 0, len(lines))
	skipping := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == triggersHeader {
			skipping = true
			continue
		}
		if skipping {
			if !strings.HasPrefix(trimmed, "[") {
				continue
			}
			skipping = false
		}
		out = append(out, line)
	}
	return out
}

// bankSectionEnd returns the index just past the [bank] section, or len(lines)
// when there is no [bank] header.
func bankSectionEnd(lines []string) int {
	at := len(lines)
	inBank := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == bankHeader {
			inBank = true
			at = i + 1
			continue
		}
		if !inBank {
			continue
		}
		if strings.HasPrefix(trimmed, "[") {
			return i
		}
		at = i + 1
	}
	return at
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func trimLeadingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return lines
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
