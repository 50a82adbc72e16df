package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKV stores all keys in one JSON object on disk. Values must be valid JSON documents.
// A file that doesn't parse makes Get return ErrCorrupt; the next Set or Delete moves it aside
// to <path>.corrupt and starts over.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV returns a store backed by path. The parent directory is created with 0700.
func NewFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileKV{path: path}, nil
}

// Path returns the backing file.
func (f *FileKV) Path() string {
	return f.path
}

// Get returns the raw JSON stored under key.
func (f *FileKV) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Set stores value under key and rewrites the file.
func (f *FileKV) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.readOrDiscard()
	if err != nil {
		return err
	}
	entries[key] = json.RawMessage(value)
	return f.write(entries)
}

// Delete removes key and rewrites the file.
func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.readOrDiscard()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return f.write(entries)
}

// read loads the whole file; a missing or empty file is an empty store.
func (f *FileKV) read() (map[string]json.RawMessage, error) {
	entries := make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal storage file: %v", ErrCorrupt, err)
	}
	return entries, nil
}

// readOrDiscard is read for writers: a corrupt file is renamed to <path>.corrupt and
// replaced by an empty store.
func (f *FileKV) readOrDiscard() (map[string]json.RawMessage, error) {
	entries, err := f.read()
	if !errors.Is(err, ErrCorrupt) {
		return entries, err
	}
	if err := os.Rename(f.path, f.path+".corrupt"); err != nil {
		return nil, fmt.Errorf("failed to move corrupt storage file: %w", err)
	}
	return make(map[string]json.RawMessage), nil
}

// write replaces the file atomically (temp file + rename).
func (f *FileKV) write(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kv-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}
