package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/planwright/planwright/pkg/errors"
	"github.com/planwright/planwright/pkg/plan"
)

// FileStore persists each plan as <id>.json under one directory. It
// serializes writes with a mutex; concurrent processes are not
// coordinated.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a file store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	// IDs are UUIDs in practice; reject anything that could escape the
	// directory.
	if id == "" || id != filepath.Base(id) || strings.ContainsAny(id, "/\\") {
		return "", apperrors.New(apperrors.ErrCodeInvalidPlan, "invalid plan ID %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Get loads a plan from its file.
func (s *FileStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	p, err := plan.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	return p, err
}

// Put writes a plan to its file.
func (s *FileStore) Put(ctx context.Context, p *plan.Plan) error {
	if err := checkPlan(p); err != nil {
		return err
	}
	path, err := s.path(p.ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return plan.WriteFile(p, path)
}

// Delete removes a plan's file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return notFound(id)
	}
	return err
}

// List loads every plan in the directory, ordered by ID. Files that are
// not valid plan documents are skipped.
func (s *FileStore) List(ctx context.Context) ([]*plan.Plan, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []*plan.Plan
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		p, err := plan.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *plan.Plan) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
