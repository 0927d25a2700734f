package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/medconnect/medconnect-client/internal/domain/entities"
)

const snapshotFile = "session.json"

// FileStore keeps the session snapshot as a JSON file under dir.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed session store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the persisted user snapshot. A missing file means no session.
// A corrupt snapshot is discarded so the caller starts anonymous.
func (s *FileStore) Load() (*entities.User, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session snapshot: %w", err)
	}

	var user entities.User
	if err := json.Unmarshal(data, &user); err != nil {
		_ = s.Clear()
		return nil, nil
	}
	return &user, nil
}

// Save writes the user snapshot, creating the directory if needed
func (s *FileStore) Save(user *entities.User) error {
	if user == nil {
		return fmt.Errorf("cannot persist nil user")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("write session snapshot: %w", err)
	}
	return nil
}

// Clear removes the persisted snapshot. Clearing an absent snapshot is fine.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, snapshotFile)
}
