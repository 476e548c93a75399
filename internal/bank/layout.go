package bank

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"devaforge/internal/archive"
	"devaforge/internal/config"
	"devaforge/internal/faults"
	"devaforge/internal/fsutil"
	"devaforge/internal/manifest"
)

// AudioDirName is the directory holding a bank's audio assets.
const AudioDirName = "audio"

const lockFileName = ".devaforge.lock"

// Layout locates the workspace directories a build reads and writes.
type Layout struct {
	Root       string
	BanksRoot  string
	OutputRoot string
	Extension  string
}

// LayoutFromConfig derives the layout from resolved configuration.
func LayoutFromConfig(cfg *config.Config) Layout {
	return Layout{
		Root:       cfg.Paths.Root,
		BanksRoot:  cfg.BanksRoot(),
		OutputRoot: cfg.OutputRoot(),
		Extension:  cfg.Archive.Extension,
	}
}

// ArchivePath returns where the archive of author.name is written.
func (l Layout) ArchivePath(author, name string) string {
	return filepath.Join(l.OutputRoot, archive.FileName(author, name, l.Extension))
}

// Banks returns every directory directly under the banks root that holds a
// manifest, sorted by path. A missing banks root is a not-found error; an
// empty one yields an empty slice.
func (l Layout) Banks() ([]string, error) {
	entries, err := os.ReadDir(l.BanksRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrNotFound, "", "discover banks", fmt.Sprintf("banks directory not found: %s", l.BanksRoot), nil)
		}
		return nil, faults.Wrap(faults.ErrIO, "", "discover banks", fmt.Sprintf("list %s", l.BanksRoot), err)
	}

	var dirs []string
	for _, entry := range entries {
		dir := filepath.Join(l.BanksRoot, entry.Name())
		if fsutil.IsDir(dir) && hasManifest(dir) {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func hasManifest(dir string) bool {
	return fsutil.IsFile(filepath.Join(dir, manifest.FileName))
}
