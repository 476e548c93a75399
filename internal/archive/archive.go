package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"devaforge/internal/fsutil"
	"devaforge/internal/manifest"
)

const (
	readmeEntry  = "README.md"
	licenseEntry = "LICENSE"
	audioPrefix  = "audio/"
)

// ErrMissingIdentity is returned when author or name is blank.
var ErrMissingIdentity = errors.New("bank author and name are required")

// epoch is the DOS epoch; every entry carries it so output does not depend on
// file timestamps.
var epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	readmeCandidates  = []string{"README.md", "README", "README.txt"}
	licenseCandidates = []string{"LICENSE", "LICENSE.md", "LICENSE.txt"}
)

// Spec describes one archive build.
type Spec struct {
	Author      string
	Name        string
	Description string

	BankDir      string
	ManifestPath string
	AudioDir     string

	OutputRoot string
	Extension  string
}

// FileName returns "<author>.<name>.<ext>".
func FileName(author, name, ext string) string {
	return author + "." + name + "." + strings.TrimPrefix(ext, ".")
}

// Assemble writes the archive described by spec and returns its path. A
// failure after the output file was created leaves the partial file in place.
func Assemble(spec Spec) (path string, err error) {
	if strings.TrimSpace(spec.Author) == "" || strings.TrimSpace(spec.Name) == "" {
		return "", ErrMissingIdentity
	}

	if err := os.MkdirAll(spec.OutputRoot, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path = filepath.Join(spec.OutputRoot, FileName(spec.Author, spec.Name, spec.Extension))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
		if err != nil {
			path = ""
		}
	}()

	zw := zip.NewWriter(out)
	if err := writeEntries(zw, spec); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize zip: %w", err)
	}
	return path, nil
}

func writeEntries(zw *zip.Writer, spec Spec) error {
	manifestData, err := os.ReadFile(spec.ManifestPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", manifest.FileName, err)
	}
	if err := writeBytes(zw, manifest.FileName, manifestData); err != nil {
		return err
	}

	readme, err := readFirst(spec.BankDir, readmeCandidates)
	if err != nil {
		return err
	}
	if readme == nil {
		readme = []byte(Readme(spec.Author, spec.Name, spec.Description))
	}
	if err := writeBytes(zw, readmeEntry, readme); err != nil {
		return err
	}

	license, err := readFirst(spec.BankDir, licenseCandidates)
	if err != nil {
		return err
	}
	if license == nil {
		license = []byte(License(spec.Author))
	}
	if err := writeBytes(zw, licenseEntry, license); err != nil {
		return err
	}

	if _, err := zw.CreateHeader(&zip.FileHeader{Name: audioPrefix, Method: zip.Store, Modified: epoch}); err != nil {
		return fmt.Errorf("add audio directory to zip: %w", err)
	}

	files, err := fsutil.WalkFiles(spec.AudioDir)
	if err != nil {
		return fmt.Errorf("list audio files: %w", err)
	}
	entries := make([]audioFile, 0, len(files))
	for _, file := range files {
		rel, ok := fsutil.RelSlash(spec.AudioDir, file)
		if !ok {
			rel = filepath.Base(file)
		}
		entries = append(entries, audioFile{path: file, entry: audioPrefix + rel})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].entry < entries[j].entry })

	for _, f := range entries {
		if err := copyFile(zw, f.entry, f.path); err != nil {
			return err
		}
	}
	return nil
}

type audioFile struct {
	path  string
	entry string
}

func fileHeader(name string) *zip.FileHeader {
	header := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: epoch}
	header.SetMode(0o644)
	return header
}

func writeBytes(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(fileHeader(name))
	if err != nil {
		return fmt.Errorf("add %s to zip: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s to zip: %w", name, err)
	}
	return nil
}

func copyFile(zw *zip.Writer, name, source string) error {
	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("read audio file %s: %w", source, err)
	}
	defer f.Close()

	w, err := zw.CreateHeader(fileHeader(name))
	if err != nil {
		return fmt.Errorf("add %s to zip: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("write %s to zip: %w", name, err)
	}
	return nil
}

// readFirst returns the contents of the first existing candidate in dir, or
// nil when none exists.
func readFirst(dir string, candidates []string) ([]byte, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if !fsutil.IsFile(path) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, nil
}
