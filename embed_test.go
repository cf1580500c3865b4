package agenda

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestEmbeddedLocales(t *testing.T) {
	for _, name := range []string{"es.yaml", "en.yaml"} {
		data, err := fs.ReadFile(Locales, name)
		if err != nil {
			t.Fatalf("reading embedded %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("embedded %s is empty", name)
		}
	}
}

func TestOverlayFS_EmbeddedOnly(t *testing.T) {
	// Given: an embedded FS with a file and a local dir without it
	embedded := fstest.MapFS{
		"es.yaml": &fstest.MapFile{Data: []byte("from embedded")},
	}
	localDir := t.TempDir()

	// When: opening the file via overlay
	ofs := OverlayFS(localDir, embedded)
	data, err := fs.ReadFile(ofs, "es.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Then: embedded content is returned
	if string(data) != "from embedded" {
		t.Errorf("got %q, want %q", string(data), "from embedded")
	}
}

func TestOverlayFS_LocalOverride(t *testing.T) {
	// Given: both local and embedded have the same file
	embedded := fstest.MapFS{
		"es.yaml": &fstest.MapFile{Data: []byte("from embedded")},
	}
	localDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(localDir, "es.yaml"), []byte("from local"), 0o644); err != nil {
		t.Fatal(err)
	}

	// When: opening the file via overlay
	ofs := OverlayFS(localDir, embedded)
	data, err := fs.ReadFile(ofs, "es.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	// Then: local file takes precedence
	if string(data) != "from local" {
		t.Errorf("got %q, want %q", string(data), "from local")
	}
}

func TestOverlayFS_EmptyLocalDir(t *testing.T) {
	// Given: no local directory configured
	embedded := fstest.MapFS{
		"en.yaml": &fstest.MapFile{Data: []byte("embedded-en")},
	}

	// When/Then: reads fall straight through to embedded
	data, err := fs.ReadFile(OverlayFS("", embedded), "en.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "embedded-en" {
		t.Errorf("got %q, want %q", string(data), "embedded-en")
	}
}

func TestOverlayFS_NotFound(t *testing.T) {
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	if _, err := fs.ReadFile(ofs, "missing.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOverlayFS_RejectsInvalidPath(t *testing.T) {
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	for _, name := range []string{"../escape", "/absolute", "bad\\slash"} {
		if _, err := ofs.Open(name); err == nil {
			t.Errorf("Open(%q) should return error", name)
		}
	}
}
