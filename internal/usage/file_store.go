package usage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// implements Store as a JSON file on local disk, one entry per key.
// used by the terminal client as its equivalent of browser local storage.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// creates a file-backed usage store; the file is created on first write
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// retrieves the record for a client
func (s *FileStore) Load(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}

	raw, exists := entries[key]
	if !exists {
		return nil, nil
	}

	return parseRecord(raw), nil
}

// overwrites the record for a client
func (s *FileStore) Save(_ context.Context, key string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return err
	}

	return s.put(entries, key, record)
}

// increments the record while holding the file lock
func (s *FileStore) Increment(_ context.Context, key, today string, limit int) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return Record{}, false, err
	}

	var current *Record
	if raw, exists := entries[key]; exists {
		current = parseRecord(raw)
	}

	next, allowed := applyIncrement(current, today, limit)
	if err := s.put(entries, key, next); err != nil {
		return Record{}, false, err
	}

	return next, allowed, nil
}

// reads all entries; a missing or corrupt file reads as empty
func (s *FileStore) read() (map[string]json.RawMessage, error) {
	entries := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entries, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read usage file: %w", err)
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return make(map[string]json.RawMessage), nil
	}

	return entries, nil
}

func (s *FileStore) put(entries map[string]json.RawMessage, key string, record Record) error {
	encoded, err := encodeRecord(record)
	if err != nil {
		return err
	}

	entries[key] = encoded

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal usage file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create usage directory: %w", err)
	}

	// replaced via rename so readers never see a partial file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write usage file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace usage file: %w", err)
	}

	return nil
}
