// Package store persists the client's identity snapshot as one JSON file
// under the state directory, so a restart resumes from the last successful
// login without re-verifying against the backend.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const snapshotFile = "auth.json"

// ErrNoSnapshot reports that no identity has been persisted yet.
var ErrNoSnapshot = errors.New("no persisted identity snapshot")

// StateFile is a durable key-value slot for the identity snapshot.
type StateFile struct {
	dir string
}

// NewStateFile ensures the state directory exists and returns a handle.
func NewStateFile(dir string) (*StateFile, error) {
	if dir == "" {
		dir = ".tutorhub"
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &StateFile{dir: dir}, nil
}

// Save writes the snapshot atomically: temp file then rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *StateFile) Save(snapshot interface{}) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode identity snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, snapshotFile+".*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()          //nolint:errcheck
		os.Remove(tmpName)   //nolint:errcheck
		return fmt.Errorf("write identity snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("restrict snapshot permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path()); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return fmt.Errorf("commit identity snapshot: %w", err)
	}
	return nil
}

// Load decodes the persisted snapshot into out. Returns ErrNoSnapshot when
// nothing has been saved.
func (s *StateFile) Load(out interface{}) error {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoSnapshot
		}
		return fmt.Errorf("read identity snapshot: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode identity snapshot: %w", err)
	}
	return nil
}

// Clear removes the persisted snapshot if present.
func (s *StateFile) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear identity snapshot: %w", err)
	}
	return nil
}

// Path exposes the snapshot location (useful for diagnostics).
func (s *StateFile) Path() string {
	return s.path()
}

func (s *StateFile) path() string {
	return filepath.Join(s.dir, snapshotFile)
}
