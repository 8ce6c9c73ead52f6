package breaker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// FileStore persists the checkpoint as a single JSON file. It is the mirror
// ops tooling reads; the sqlite store is the primary copy.
type FileStore struct {
	path string
}

// NewFileStore creates a checkpoint store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadCheckpoint reads the checkpoint file. A missing file means the breaker
// has never tripped and returns nil without error.
func (s *FileStore) LoadCheckpoint(_ context.Context) (*Checkpoint, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "breaker: read checkpoint %s", s.path)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, eris.Wrapf(err, "breaker: parse checkpoint %s", s.path)
	}
	return &cp, nil
}

// SaveCheckpoint writes the checkpoint atomically (temp file + rename).
func (s *FileStore) SaveCheckpoint(_ context.Context, cp Checkpoint) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return eris.Wrapf(err, "breaker: create checkpoint dir for %s", s.path)
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return eris.Wrap(err, "breaker: marshal checkpoint")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "breaker: write checkpoint %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return eris.Wrapf(err, "breaker: rename checkpoint %s", s.path)
	}
	return nil
}

// ClearCheckpoint removes the checkpoint file. Missing files are not errors.
func (s *FileStore) ClearCheckpoint(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return eris.Wrapf(err, "breaker: remove checkpoint %s", s.path)
	}
	return nil
}
