package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverImagesBasic(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "b.bmp"))
	mustWrite(t, filepath.Join(dir, "a.PNG"))
	mustWrite(t, filepath.Join(dir, "nested", "c.bmp"))
	mustWrite(t, filepath.Join(dir, ".DS_Store"))
	mustWrite(t, filepath.Join(dir, "notes.txt"))

	files, err := DiscoverImages(dir)
	if err != nil {
		t.Fatalf("DiscoverImages error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.PNG"),
		filepath.Join(dir, "b.bmp"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i, f := range want {
		if files[i] != f {
			t.Fatalf("files[%d]=%s want %s", i, files[i], f)
		}
	}
}

func TestDiscoverImagesMissingDir(t *testing.T) {
	if _, err := DiscoverImages(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
