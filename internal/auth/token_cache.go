package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	configDirName = "blocify"
	slotFileName  = "storage.json"
)

// FileStore keeps slots in a JSON file, used by the command line tools.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultFileStore returns a FileStore using the default location:
// ~/.config/blocify/storage.json
func DefaultFileStore() (*FileStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("getting user config dir: %w", err)
	}

	path := filepath.Join(configDir, configDirName, slotFileName)
	return &FileStore{path: path}, nil
}

// NewFileStore creates a FileStore with a custom path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path where slots are stored.
func (s *FileStore) Path() string {
	return s.path
}

// Get reads a slot from disk.
// A missing file is treated as an empty store.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return "", false, err
	}

	v, ok := slots[key]
	return v, ok, nil
}

// Set writes a slot to disk, creating the parent directory if needed.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}

	slots[key] = value
	return s.save(slots)
}

// Delete removes a slot. The file itself is removed once it holds no slots.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := slots[key]; !ok {
		return nil
	}
	delete(slots, key)

	if len(slots) == 0 {
		err := os.Remove(s.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing storage file: %w", err)
		}
		return nil
	}

	return s.save(slots)
}

func (s *FileStore) load() (map[string]string, error) {
	slots := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return slots, nil
		}
		return nil, fmt.Errorf("reading storage file: %w", err)
	}

	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("parsing storage file: %w", err)
	}

	return slots, nil
}

func (s *FileStore) save(slots map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding storage file: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing storage file: %w", err)
	}

	return nil
}
