package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanPaths(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "family.txt"))
	touch(t, filepath.Join(root, "work", "team.TXT"))
	touch(t, filepath.Join(root, "notes.md"))
	touch(t, filepath.Join(root, ".cache", "old.txt"))

	extra := filepath.Join(t.TempDir(), "single.txt")
	touch(t, extra)

	files, err := ScanPaths(root, extra, filepath.Join(root, "family.txt"), filepath.Join(root, "gone"))
	if err != nil {
		t.Fatalf("ScanPaths() error = %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %+v", len(files), files)
	}

	keys := map[string]bool{}
	for _, f := range files {
		keys[Key(f)] = true
	}
	for _, want := range []string{"family", "work/team", "single"} {
		if !keys[want] {
			t.Errorf("missing key %q in %v", want, keys)
		}
	}
}

func TestScanPaths_MissingFile(t *testing.T) {
	if _, err := ScanPaths(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for a missing explicit file")
	}
}
