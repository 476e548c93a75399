package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"devaforge/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatable_MissingNested(t *testing.T) {
	result := CheckCreatable("test", filepath.Join(t.TempDir(), "a", "b", "c"))
	if !result.Passed {
		t.Fatalf("expected pass for creatable path, got: %s", result.Detail)
	}
}

func TestCheckCreatable_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckCreatable("test", filepath.Join(f, "sub"))
	if result.Passed {
		t.Fatal("expected failure when ancestor is a file")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistory())

	results := RunAll(cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Passed || Passed(results) {
		t.Fatal("missing banks directory should fail")
	}

	if err := os.MkdirAll(cfg.BanksRoot(), 0o755); err != nil {
		t.Fatal(err)
	}
	results = RunAll(cfg)
	if !Passed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if got := RunAll(nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
