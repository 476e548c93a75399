package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// BankManifest renders a minimal bank.toml for author and name.
func BankManifest(author, name string) string {
	return fmt.Sprintf("[bank]\nname = %q\nauthor = %q\ndescription = \"test bank\"\nversion = \"0.0.1\"\naccess = \"public\"\n", name, author)
}

// WriteBank creates <banksRoot>/<dirName> with the given manifest text and
// audio files (paths relative to audio/). The audio directory is always
// created. It returns the bank directory.
func WriteBank(t testing.TB, banksRoot, dirName, manifestText string, audio ...string) string {
	t.Helper()

	dir := filepath.Join(banksRoot, dirName)
	if err := os.MkdirAll(filepath.Join(dir, "audio"), 0o755); err != nil {
		t.Fatalf("mkdir bank %s: %v", dirName, err)
	}
	WriteText(t, filepath.Join(dir, "bank.toml"), manifestText)
	for i, rel := range audio {
		WriteFile(t, filepath.Join(dir, "audio", filepath.FromSlash(rel)), int64(64+i))
	}
	return dir
}
