package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/matzehuels/blockgraph/pkg/errors"
)

// FileStore keeps each artifact as <dir>/<id>.json on an afero filesystem.
type FileStore struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted
// there.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// Dir returns the store root.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) artifactPath(id string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	name := id + ".json"
	if err := errors.ValidatePath(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func (s *FileStore) Put(ctx context.Context, a *Artifact) error {
	p, err := s.artifactPath(a.ID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := afero.WriteFile(s.fs, p, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Artifact, error) {
	p, err := s.artifactPath(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(p)
}

func (s *FileStore) read(p string) (*Artifact, error) {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &a, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var out []Artifact
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		a, err := s.read(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		a.Data = nil
		out = append(out, *a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
