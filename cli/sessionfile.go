// Package main provides the file-backed session store for the Verto CLI.
//
// Sessions persist as JSON at the configured path (default
// ~/.verto/session.json) so a login survives CLI restarts.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/muhammadjan5/verto-ux/sdk/workspace"
)

// FileSessionStorage persists the session as a JSON file.
type FileSessionStorage struct {
	path string
}

// NewFileSessionStorage creates a storage writing to the given path. An empty
// path yields a storage that never persists.
func NewFileSessionStorage(path string) *FileSessionStorage {
	return &FileSessionStorage{path: path}
}

func (f *FileSessionStorage) Load() (*workspace.StoredSession, error) {
	if f.path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var stored workspace.StoredSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (f *FileSessionStorage) Save(s workspace.StoredSession) error {
	if f.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// The file holds a bearer token; keep it private to the user.
	return os.WriteFile(f.path, raw, 0600)
}

func (f *FileSessionStorage) Clear() error {
	if f.path == "" {
		return nil
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
