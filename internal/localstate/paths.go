// Package localstate resolves where the local build target keeps its data:
// the SQLite database and the folder image directory.
package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "NOTES_BACKEND_HOME" // override for tests
	dirName    = ".notes-backend"     // default under $HOME
	dbFilename = "notes.db"
	imagesDir  = "images"
)

// DataDir returns the directory where local state is stored (~/.notes-backend).
// It creates the directory with 0700 permissions if it does not exist.
func DataDir() (string, error) {
	if custom := os.Getenv(envHome); custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the absolute path to the SQLite database file.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}

// ImagesPath returns the directory for stored folder images.
func ImagesPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, imagesDir), nil
}
