package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"devaforge/internal/faults"
	"devaforge/internal/manifest"
)

// InitialVersion is the version written into scaffolded manifests.
const InitialVersion = "0.0.1"

// AccessLevels lists the accepted values of [bank].access.
var AccessLevels = []string{"public", "private", "protected"}

// Scaffold holds the answers needed to create a bank.
type Scaffold struct {
	Name        string
	Author      string
	Description string
	Access      string
}

// Create writes a new bank directory "<author>.<name>" under the banks root
// with a manifest and an empty audio directory. Name and author are
// kebab-cased. An existing directory is never touched.
func Create(layout Layout, s Scaffold) (string, error) {
	name := Kebab(s.Name)
	author := Kebab(s.Author)
	if name == "" || author == "" {
		return "", faults.Wrap(faults.ErrMalformed, "", "create", "bank name and author are required", nil)
	}
	access := strings.ToLower(strings.TrimSpace(s.Access))
	if access == "" {
		access = AccessLevels[0]
	}
	if !slices.Contains(AccessLevels, access) {
		return "", faults.Wrap(faults.ErrMalformed, "", "create",
			fmt.Sprintf("access %q must be one of %s", s.Access, strings.Join(AccessLevels, ", ")), nil)
	}

	id := author + "." + name
	dir := filepath.Join(layout.BanksRoot, id)
	if _, err := os.Lstat(dir); err == nil {
		return "", faults.Wrap(faults.ErrExists, dir, "create", "bank already exists", nil)
	}

	if err := os.MkdirAll(filepath.Join(dir, AudioDirName), 0o755); err != nil {
		return "", faults.Wrap(faults.ErrIO, dir, "create", "create bank directories", err)
	}
	text := manifest.Render(manifest.Section{
		Name:        name,
		Author:      author,
		Description: strings.TrimSpace(s.Description),
		Version:     InitialVersion,
		Access:      access,
	})
	if err := manifest.WriteFileAtomic(filepath.Join(dir, manifest.FileName), []byte(text)); err != nil {
		return "", faults.Wrap(faults.ErrIO, dir, "create", "write "+manifest.FileName, err)
	}
	return dir, nil
}

var lower = cases.Lower(language.Und)

// Kebab lowercases s and joins its words with "-". Word boundaries are runs
// of non-alphanumeric characters and lower-to-upper case changes.
func Kebab(s string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, lower.String(string(current)))
			current = current[:0]
		}
	}
	runes := []rune(strings.TrimSpace(s))
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return strings.Join(words, "-")
}
