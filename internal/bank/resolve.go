package bank

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devaforge/internal/faults"
	"devaforge/internal/fsutil"
	"devaforge/internal/manifest"
)

const aliasPrefix = "bank."

// Resolve turns a user reference into a bank directory. The reference may be a
// path (absolute or relative to the workspace root) to a bank directory or to
// its bank.toml, an alias "bank.<author>.<name>", or a short alias
// "bank.<name>" that must match exactly one "<author>.<name>" directory. A bare
// "<author>.<name>" naming a directory under the banks root is accepted too.
func Resolve(layout Layout, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", faults.Wrap(faults.ErrNotFound, "", "resolve", "empty bank reference", nil)
	}

	candidate := ref
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(layout.Root, ref)
	}
	if filepath.Base(candidate) == manifest.FileName && fsutil.IsFile(candidate) {
		return filepath.Dir(candidate), nil
	}
	if fsutil.IsDir(candidate) && hasManifest(candidate) {
		return candidate, nil
	}

	rest, isAlias := strings.CutPrefix(ref, aliasPrefix)
	if !isAlias {
		if exact := filepath.Join(layout.BanksRoot, ref); !strings.ContainsRune(ref, os.PathSeparator) && hasManifest(exact) {
			return exact, nil
		}
		return "", faults.Wrap(faults.ErrNotFound, "", "resolve", fmt.Sprintf("invalid path: %s (no %s found)", candidate, manifest.FileName), nil)
	}

	if exact := filepath.Join(layout.BanksRoot, rest); rest != "" && hasManifest(exact) {
		return exact, nil
	}
	if rest == "" || strings.Contains(rest, ".") {
		return "", faults.Wrap(faults.ErrNotFound, "", "resolve", fmt.Sprintf("alias not found: %s; expected under %s", ref, layout.BanksRoot), nil)
	}

	dirs, err := layout.Banks()
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			return "", faults.Wrap(faults.ErrNotFound, "", "resolve", fmt.Sprintf("no bank matched alias %s under %s", ref, layout.BanksRoot), nil)
		}
		return "", err
	}
	suffix := "." + rest
	var matches []string
	for _, dir := range dirs {
		if strings.HasSuffix(filepath.Base(dir), suffix) {
			matches = append(matches, dir)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", faults.Wrap(faults.ErrNotFound, "", "resolve", fmt.Sprintf("no bank matched alias %s under %s", ref, layout.BanksRoot), nil)
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, filepath.Base(m))
		}
		return "", faults.Wrap(faults.ErrAmbiguous, "", "resolve",
			fmt.Sprintf("multiple banks matched %s (%s); use 'bank.<author>.<name>'", ref, strings.Join(names, ", ")), nil)
	}
}
