package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sleuth/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, ReadWrite)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "read/write ok") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), ReadOnly)
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
	result := CheckDirectoryAccess("test", f, ReadOnly)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOriginals(t *testing.T) {
	dir := t.TempDir()
	if res := CheckOriginals(dir, []string{".png"}, false); res.Passed {
		t.Fatal("expected failure for empty folder")
	}
	if err := os.WriteFile(filepath.Join(dir, "a.PNG"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if res := CheckOriginals(dir, []string{".png"}, false); res.Passed {
		t.Fatal("case-sensitive check should not see a.PNG")
	}
	if res := CheckOriginals(dir, []string{".png"}, true); !res.Passed {
		t.Fatalf("folded check failed: %s", res.Detail)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if got := RunAll(nil); got != nil {
		t.Fatalf("expected nil results, got %v", got)
	}
}

func TestRunAll_MissingOriginals(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OriginalsDir = filepath.Join(t.TempDir(), "missing")

	results := RunAll(&cfg)
	if len(results) != 1 {
		t.Fatalf("expected only the directory check, got %+v", results)
	}
	if AllPassed(results) {
		t.Fatal("expected failure")
	}
}

func TestRunAll_IncludesLogDirectoryWhenFileLogging(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OriginalsDir = base
	cfg.Logging.File = filepath.Join(base, "sleuth.log")
	if err := os.WriteFile(filepath.Join(base, "a.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %+v", results)
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}
