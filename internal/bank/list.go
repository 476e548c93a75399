package bank

import (
	"errors"
	"path/filepath"

	"devaforge/internal/faults"
	"devaforge/internal/manifest"
)

// Info summarizes one bank for listings.
type Info struct {
	ID          string `json:"id"`
	Dir         string `json:"dir"`
	Name        string `json:"name"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Access      string `json:"access,omitempty"`
	Triggers    int    `json:"triggers"`
	Error       string `json:"error,omitempty"`
}

// List reads the manifest of every bank under the banks root. Unreadable
// manifests are reported through Info.Error instead of failing the listing. A
// missing banks root yields an empty list.
func List(layout Layout) ([]Info, error) {
	dirs, err := layout.Banks()
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	infos := make([]Info, 0, len(dirs))
	for _, dir := range dirs {
		info := Info{ID: filepath.Base(dir), Dir: dir}
		doc, err := manifest.Load(filepath.Join(dir, manifest.FileName))
		if err != nil {
			info.Error = err.Error()
			infos = append(infos, info)
			continue
		}
		if doc.Bank.Author != "" && doc.Bank.Name != "" {
			info.ID = doc.ID()
		}
		info.Name = doc.Bank.Name
		info.Author = doc.Bank.Author
		info.Description = doc.Bank.Description
		info.Version = doc.Bank.Version
		info.Access = doc.Bank.Access
		info.Triggers = len(doc.Triggers)
		if err := doc.Validate(); err != nil {
			info.Error = err.Error()
		}
		infos = append(infos, info)
	}
	return infos, nil
}
