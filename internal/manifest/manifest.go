package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"devaforge/internal/triggers"
)

// FileName is the manifest file name inside a bank directory.
const FileName = "bank.toml"

// ErrInvalid marks manifests that do not parse or violate required fields.
var ErrInvalid = errors.New("invalid manifest")

// Section is the [bank] table.
type Section struct {
	Name        string `toml:"name"`
	Author      string `toml:"author"`
	Description string `toml:"description,omitempty"`
	Version     string `toml:"version,omitempty"`
	Access      string `toml:"access,omitempty"`
}

// Document is the structured view of a manifest.
type Document struct {
	Bank     Section            `toml:"bank"`
	Triggers []triggers.Trigger `toml:"triggers"`
}

// ID returns the "<author>.<name>" identifier of the bank.
func (d *Document) ID() string {
	return d.Bank.Author + "." + d.Bank.Name
}

// Load reads and parses the manifest at path. Missing files surface an error
// matching fs.ErrNotExist; parse failures match ErrInvalid.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", ErrInvalid, row, col, decodeErr.Error())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &doc, nil
}

// Validate checks the required [bank] fields and the uniqueness of trigger
// names and paths.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Bank.Author) == "" || strings.TrimSpace(d.Bank.Name) == "" {
		return fmt.Errorf("%w: fields [bank].author and [bank].name are required in %s", ErrInvalid, FileName)
	}
	// Block numbers are 1-based in file order.
	paths := make(map[string]int, len(d.Triggers))
	names := make(map[string]int, len(d.Triggers))
	for i, t := range d.Triggers {
		block := i + 1
		if first, dup := paths[t.Path]; dup {
			return fmt.Errorf("%w: [[triggers]] block %d (name %q) repeats path %q from block %d; remove or change one of them in %s",
				ErrInvalid, block, t.Name, t.Path, first, FileName)
		}
		paths[t.Path] = block
		if first, dup := names[t.Name]; dup {
			return fmt.Errorf("%w: [[triggers]] block %d (path %q) repeats name %q from block %d; rename one of them in %s",
				ErrInvalid, block, t.Path, t.Name, first, FileName)
		}
		names[t.Name] = block
	}
	return nil
}
