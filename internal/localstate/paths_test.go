package localstate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataDir_EnvOverride(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "custom-home")
	t.Setenv("NOTES_BACKEND_HOME", tmp)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if dir != tmp {
		t.Fatalf("dir: got %s want %s", dir, tmp)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("dir should exist: %v", err)
	}
}

func TestPaths_UnderDataDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("NOTES_BACKEND_HOME", tmp)

	db, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if filepath.Dir(db) != tmp || filepath.Base(db) != "notes.db" {
		t.Fatalf("unexpected db path: %s", db)
	}

	img, err := ImagesPath()
	if err != nil {
		t.Fatalf("ImagesPath: %v", err)
	}
	if filepath.Dir(img) != tmp {
		t.Fatalf("unexpected images path: %s", img)
	}
}
