package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitLibrary(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	s, err := NewStorage(root)
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	if err := s.InitLibrary(); err != nil {
		t.Fatalf("InitLibrary failed: %v", err)
	}

	for _, dir := range []string{"logs", "exports"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err != nil || !info.IsDir() {
			t.Errorf("Expected directory %s to exist", dir)
		}
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := writeFileAtomic(path, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := writeFileAtomic(path, []byte("two")); err != nil {
		t.Fatal(err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
	data, _ := os.ReadFile(path)
	if string(data) != "two" {
		t.Errorf("Expected last write to win, got %q", data)
	}
}
